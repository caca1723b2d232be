package grid

import (
	"fmt"
	"strings"
)

// CoverType identifies a physical cover object standing on a tile. The
// object shields the orthogonally adjacent tiles on their shared edge.
type CoverType uint8

const (
	CoverNone CoverType = iota
	CoverHalf
	CoverFull
	coverTypeCount
)

type coverInfo struct {
	name string
	// protectionPercent is the share of an attacker's hit chance that still
	// gets through. Lower protects better.
	protectionPercent int
	// coveringAngle is the full width, in degrees, of the cone the cover
	// protects against, centred on the direction from the covered tile to
	// the cover.
	coveringAngle float64
}

var coverTable = [coverTypeCount]coverInfo{
	CoverNone: {name: "none", protectionPercent: 100},
	CoverHalf: {name: "half", protectionPercent: 60, coveringAngle: 120},
	CoverFull: {name: "full", protectionPercent: 30, coveringAngle: 150},
}

func (c CoverType) info() coverInfo {
	if c >= coverTypeCount {
		return coverTable[CoverNone]
	}
	return coverTable[c]
}

func (c CoverType) String() string { return c.info().name }

// ProtectionPercent returns the share of hit chance left after this cover.
func (c CoverType) ProtectionPercent() int { return c.info().protectionPercent }

// CoveringAngle returns the full protecting cone in degrees.
func (c CoverType) CoveringAngle() float64 { return c.info().coveringAngle }

// ParseCover accepts a cover name as printed by String.
func ParseCover(name string) (CoverType, error) {
	for c := CoverType(0); c < coverTypeCount; c++ {
		if coverTable[c].name == strings.ToLower(name) {
			return c, nil
		}
	}
	return CoverNone, fmt.Errorf("unknown cover %q", name)
}

// CoverSet is a bitmask of cover kinds a unit knows how to use.
type CoverSet uint16

// Covers builds a set from kinds.
func Covers(cs ...CoverType) CoverSet {
	var s CoverSet
	for _, c := range cs {
		s |= 1 << c
	}
	return s
}

// AllCovers is every real cover kind.
func AllCovers() CoverSet { return Covers(CoverHalf, CoverFull) }

// Has reports c ∈ s. CoverNone is never a member.
func (s CoverSet) Has(c CoverType) bool {
	return c != CoverNone && s&(1<<c) != 0
}
