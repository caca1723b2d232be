package nav

import "sync"

const (
	noCost   = -1
	noParent = -1
)

// arena holds the per-query search bookkeeping for one board, indexed by
// tile index. Every slot is neutral (noCost, noParent) while the arena sits
// in its pool.
type arena struct {
	cost    []int
	parent  []int
	touched []int
}

func newArena(n int) *arena {
	a := &arena{cost: make([]int, n), parent: make([]int, n)}
	for i := range a.cost {
		a.cost[i] = noCost
		a.parent[i] = noParent
	}
	return a
}

func (a *arena) record(i, cost, parent int) {
	if a.cost[i] == noCost {
		a.touched = append(a.touched, i)
	}
	a.cost[i] = cost
	a.parent[i] = parent
}

func (a *arena) known(i int) (int, bool) {
	c := a.cost[i]
	return c, c != noCost
}

// reset restores only the slots this query wrote.
func (a *arena) reset() {
	for _, i := range a.touched {
		a.cost[i] = noCost
		a.parent[i] = noParent
	}
	a.touched = a.touched[:0]
}

// arenaPool is a free list of arenas sized for one board. Concurrent
// searches each take their own arena.
type arenaPool struct {
	mu   sync.Mutex
	size int
	free []*arena
}

func newArenaPool(size int) *arenaPool {
	return &arenaPool{size: size}
}

func (p *arenaPool) get() *arena {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.free); n > 0 {
		a := p.free[n-1]
		p.free = p.free[:n-1]
		return a
	}
	return newArena(p.size)
}

// put resets a and returns it to the free list.
func (p *arenaPool) put(a *arena) {
	a.reset()
	p.mu.Lock()
	p.free = append(p.free, a)
	p.mu.Unlock()
}

// idle returns a snapshot of the arenas currently in the pool.
func (p *arenaPool) idle() []*arena {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*arena, len(p.free))
	copy(out, p.free)
	return out
}
