package scale

import "math"

// Mapper converts between domain values and track positions.
// It is an affine map fixed at construction and has no side effects.
type Mapper struct {
	from   float64
	to     float64
	coeff  float64
	origin float64
}

// NewMapper builds a mapper for the domain [from, to] spread over length
// units. offsetX is the left margin of the track and insideOffset the
// distance from the track edge to the center of a cursor at from.
func NewMapper(from, to, length, offsetX, insideOffset float64) (Mapper, error) {
	if to == from {
		return Mapper{}, configErr("to", to, "domain is empty (to equals from)")
	}
	if to < from {
		return Mapper{}, configErr("to", to, "must be greater than from")
	}
	if length <= 0 {
		return Mapper{}, configErr("length", length, "must be positive")
	}
	coeff := length / (to - from)
	if math.IsInf(coeff, 0) || math.IsNaN(coeff) || coeff <= 0 {
		return Mapper{}, configErr("length", length, "too small for the domain")
	}
	return Mapper{
		from:   from,
		to:     to,
		coeff:  coeff,
		origin: offsetX + insideOffset,
	}, nil
}

// ValueToPosition returns the track position of value.
func (m Mapper) ValueToPosition(value float64) float64 {
	return (value-m.from)*m.coeff + m.origin
}

// PositionToValue returns the value at a track position.
func (m Mapper) PositionToValue(position float64) float64 {
	return (position-m.origin)/m.coeff + m.from
}

// Coeff returns the number of units per domain unit.
func (m Mapper) Coeff() float64 { return m.coeff }

// From returns the lower domain bound.
func (m Mapper) From() float64 { return m.from }

// To returns the upper domain bound.
func (m Mapper) To() float64 { return m.to }

// Clamp limits v to the domain.
func (m Mapper) Clamp(v float64) float64 {
	return clamp(v, m.from, m.to)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
