package grid

import "github.com/zyedidia/generic/mapset"

// CoordSet is an unordered set of coordinates. The zero value is an empty
// set; Add and Union allocate it on first use.
type CoordSet struct {
	s    mapset.Set[Coord]
	live bool
}

// NewCoordSet returns a set holding cs.
func NewCoordSet(cs ...Coord) CoordSet {
	set := CoordSet{s: mapset.New[Coord](), live: true}
	for _, c := range cs {
		set.s.Put(c)
	}
	return set
}

// Add inserts c.
func (cs *CoordSet) Add(c Coord) {
	if !cs.live {
		*cs = NewCoordSet()
	}
	cs.s.Put(c)
}

// Remove deletes c.
func (cs CoordSet) Remove(c Coord) {
	if cs.live {
		cs.s.Remove(c)
	}
}

// Has reports c ∈ cs. A zero CoordSet is empty.
func (cs CoordSet) Has(c Coord) bool {
	if !cs.live {
		return false
	}
	return cs.s.Has(c)
}

// Len returns the number of members.
func (cs CoordSet) Len() int {
	if !cs.live {
		return 0
	}
	return cs.s.Size()
}

// Each calls fn for every member in unspecified order.
func (cs CoordSet) Each(fn func(c Coord)) {
	if cs.Len() == 0 {
		return
	}
	cs.s.Each(fn)
}

// Union adds every member of o to cs.
func (cs *CoordSet) Union(o CoordSet) {
	o.Each(cs.Add)
}

// SubsetOf reports whether every member of cs is in o.
func (cs CoordSet) SubsetOf(o CoordSet) bool {
	ok := true
	cs.Each(func(c Coord) {
		if !o.Has(c) {
			ok = false
		}
	})
	return ok
}

// Clone copies the set.
func (cs CoordSet) Clone() CoordSet {
	out := NewCoordSet()
	out.Union(cs)
	return out
}

// Sorted lists the members in Coord.Less order.
func (cs CoordSet) Sorted() []Coord {
	out := make([]Coord, 0, cs.Len())
	cs.Each(func(c Coord) { out = append(out, c) })
	SortCoords(out)
	return out
}
