package scale

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoleString(t *testing.T) {
	if RoleA.String() != "A" || RoleB.String() != "B" {
		t.Errorf("roles = %s, %s", RoleA, RoleB)
	}
	if Role(9).String() != "unknown" {
		t.Errorf("Role(9) = %s", Role(9))
	}
}

func TestCursorGeometry(t *testing.T) {
	a := newCursor(RoleA, 0, 10, 17, 22.5, 6)
	b := newCursor(RoleB, 100, 10, 23.5, 30, 37)

	if diff := cmp.Diff(Rect{X1: 11, Y1: 17, X2: 21, Y2: 22.5}, a.BoxBounds(16)); diff != "" {
		t.Errorf("A box mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Rect{X1: 111, Y1: 23.5, X2: 121, Y2: 30}, b.BoxBounds(116)); diff != "" {
		t.Errorf("B box mismatch (-want +got):\n%s", diff)
	}

	x, y := a.LabelAnchor(16)
	if x != 16 || y != 6 {
		t.Errorf("A label = (%v, %v), want (16, 6)", x, y)
	}
	x, y = b.LabelAnchor(116)
	if x != 116 || y != 37 {
		t.Errorf("B label = (%v, %v), want (116, 37)", x, y)
	}

	if a.Role() != RoleA || b.Value() != 100 {
		t.Errorf("accessors: role=%s value=%v", a.Role(), b.Value())
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     float64
	}{
		{25.6, 0, 26},
		{25.4, 0, 25},
		{24.5, 0, 24},
		{25.5, 0, 26},
		{-3.7, 0, -4},
		{25.678, 2, 25.68},
		{25.671, 2, 25.67},
		{25.678, -2, 25.68},
		{0, 400, 0},
		{25.678, 400, 25.678},
		{25.678, 16, 25.678},
		{1e300, 10, 1e300},
	}
	for _, tt := range tests {
		if got := RoundTo(tt.v, tt.decimals); !approxEqual(got, tt.want) {
			t.Errorf("RoundTo(%v, %d) = %v, want %v", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{25.123, 0, "25"},
		{75.123, 0, "75"},
		{25.6, 0, "26"},
		{100, 0, "100"},
		{-100, 0, "-100"},
		{-0.2, 0, "0"},
		{25.678, 2, "25.68"},
		{3, 2, "3.00"},
		{0.5, 1, "0.5"},
		{0.25, -2, "0.25"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatValue(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestCursorDisplayValue(t *testing.T) {
	c := newCursor(RoleA, 25.123, 10, 0, 0, 0)
	if got := c.DisplayValue(0); got != "25" {
		t.Errorf("DisplayValue(0) = %q, want 25", got)
	}
	if got := c.DisplayValue(2); got != "25.12" {
		t.Errorf("DisplayValue(2) = %q, want 25.12", got)
	}
}
