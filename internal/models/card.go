// internal/models/card.go
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Color is the suit of a card. Wild cards carry ColorNone until a
// color is chosen for them.
type Color int

const (
	ColorNone Color = iota
	Red
	Yellow
	Green
	Blue
)

// Colors lists the four playable colors in a fixed order.
var Colors = [...]Color{Red, Yellow, Green, Blue}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case ColorNone:
		return "none"
	default:
		return fmt.Sprintf("invalid_color(%d)", int(c))
	}
}

// ParseColor maps a wire color name back to a Color. Unknown names
// return ColorNone and false.
func ParseColor(s string) (Color, bool) {
	for _, c := range Colors {
		if c.String() == s {
			return c, true
		}
	}
	return ColorNone, false
}

// MarshalJSON renders colors as their lowercase names.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Value is the face of a card: 0-9 are numeric, the rest are the
// action and wild faces.
type Value int

const (
	Skip Value = 10 + iota
	Reverse
	DrawTwo
	Wild
	WildDrawFour
)

// IsNumber reports whether the value is a numeric face 0-9.
func (v Value) IsNumber() bool {
	return v >= 0 && v <= 9
}

// IsAction reports whether the value is skip, reverse or draw-two.
func (v Value) IsAction() bool {
	return v == Skip || v == Reverse || v == DrawTwo
}

// IsWild reports whether the value is wild or wild-draw-four.
func (v Value) IsWild() bool {
	return v == Wild || v == WildDrawFour
}

func (v Value) String() string {
	if v.IsNumber() {
		return fmt.Sprintf("%d", int(v))
	}
	switch v {
	case Skip:
		return "skip"
	case Reverse:
		return "reverse"
	case DrawTwo:
		return "draw_two"
	case Wild:
		return "wild"
	case WildDrawFour:
		return "wild_draw_four"
	default:
		return fmt.Sprintf("invalid_value(%d)", int(v))
	}
}

// MarshalJSON renders values as their wire names ("7", "skip", ...).
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

// Card is an immutable card value. Identity is by ID; a full deck
// holds duplicates of the same color+value.
type Card struct {
	ID    uuid.UUID `json:"id"`
	Color Color     `json:"color"`
	Value Value     `json:"value"`
}

// IsWild reports whether the card is a wild or wild-draw-four.
func (c Card) IsWild() bool {
	return c.Value.IsWild()
}

// IsDrawCard reports whether the card forces the next player to draw.
func (c Card) IsDrawCard() bool {
	return c.Value == DrawTwo || c.Value == WildDrawFour
}

// Points returns the card's scoring value: numeric cards count face
// value, action cards 20, wild cards 50.
func (c Card) Points() int {
	switch {
	case c.Value.IsNumber():
		return int(c.Value)
	case c.Value.IsAction():
		return 20
	default:
		return 50
	}
}

func (c Card) String() string {
	if c.IsWild() {
		return c.Value.String()
	}
	return fmt.Sprintf("%s %s", c.Color, c.Value)
}
