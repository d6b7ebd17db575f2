package scale

import (
	"math"
	"strconv"
)

// Role identifies one of the two cursors.
type Role uint8

const (
	// RoleA is the lower cursor. It sits in the upper half of the track
	// and its label is drawn above the track.
	RoleA Role = iota
	// RoleB is the upper cursor. It sits in the lower half of the track
	// and its label is drawn below the track.
	RoleB
)

// String returns a string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleA:
		return "A"
	case RoleB:
		return "B"
	default:
		return "unknown"
	}
}

// Rect is an axis-aligned box in widget units.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Cursor is one handle of the scale. The vertical geometry is fixed by its
// role; the horizontal geometry is derived from the value at draw time.
type Cursor struct {
	role      Role
	value     float64
	halfWidth float64
	y1, y2    float64
	textY     float64
}

func newCursor(role Role, value, width, y1, y2, textY float64) Cursor {
	return Cursor{
		role:      role,
		value:     value,
		halfWidth: width / 2,
		y1:        y1,
		y2:        y2,
		textY:     textY,
	}
}

// Role returns the cursor's role.
func (c Cursor) Role() Role { return c.role }

// Value returns the cursor's current value.
func (c Cursor) Value() float64 { return c.value }

// BoxBounds returns the cursor box centered at position.
func (c Cursor) BoxBounds(position float64) Rect {
	return Rect{
		X1: position - c.halfWidth,
		Y1: c.y1,
		X2: position + c.halfWidth,
		Y2: c.y2,
	}
}

// LabelAnchor returns the center point of the cursor label.
func (c Cursor) LabelAnchor(position float64) (x, y float64) {
	return position, c.textY
}

// DisplayValue returns the label text for the cursor.
func (c Cursor) DisplayValue(decimals int) string {
	return FormatValue(c.value, decimals)
}

// MaxDecimals is the largest precision a float64 value can carry.
const MaxDecimals = 15

// RoundTo rounds v to the given number of fractional digits, halves to even.
// Beyond MaxDecimals, or when scaling overflows, v is returned unchanged.
func RoundTo(v float64, decimals int) float64 {
	if decimals < 0 {
		decimals = -decimals
	}
	if decimals == 0 {
		return math.RoundToEven(v)
	}
	if decimals > MaxDecimals {
		return v
	}
	p := math.Pow10(decimals)
	scaled := v * p
	if math.IsInf(scaled, 0) {
		return v
	}
	return math.RoundToEven(scaled) / p
}

// FormatValue renders v rounded to decimals. With zero decimals the result
// has no fractional part.
func FormatValue(v float64, decimals int) string {
	if decimals < 0 {
		decimals = -decimals
	}
	r := RoundTo(v, decimals)
	if r == 0 {
		r = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(r, 'f', decimals, 64)
}
