package ecs

import "math/bits"

// Mask is a fixed-size component set keyed by ComponentID.
type Mask uint64

// MaskOf builds the set of the given components.
func MaskOf(cs ...*Component) Mask {
	var m Mask
	for _, c := range cs {
		m |= 1 << c.id
	}
	return m
}

func (m Mask) Has(c *Component) bool { return m&(1<<c.id) != 0 }

// Contains reports whether every component of sub is in m.
func (m Mask) Contains(sub Mask) bool { return m&sub == sub }

func (m Mask) Len() int { return bits.OnesCount64(uint64(m)) }

// Matches reports whether e holds every component required by s.
func Matches(s System, e *Entity) bool {
	return e.mask.Contains(MaskOf(s.Requires()...))
}
