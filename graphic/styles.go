package graphic

import "github.com/nsf/termbox-go"

// Styles are the termbox attributes of the LED matrix.
type Styles struct {
	Foreground termbox.Attribute // lit LEDs
	Background termbox.Attribute
	Off        termbox.Attribute // unlit LEDs
}

// DefaultStyles returns red LEDs on the default background.
func DefaultStyles() Styles {
	return Styles{
		Foreground: termbox.ColorRed | termbox.AttrBold,
		Background: termbox.ColorDefault,
		Off:        termbox.ColorBlack | termbox.AttrBold,
	}
}

// StylesFromUInt16 builds styles from raw attribute values.
func StylesFromUInt16(fg, bg, off uint16) Styles {
	return Styles{
		Foreground: termbox.Attribute(fg),
		Background: termbox.Attribute(bg),
		Off:        termbox.Attribute(off),
	}
}

// AsUInt16s returns the raw attribute values, for flags.
func (s Styles) AsUInt16s() (fg, bg, off uint16) {
	return uint16(s.Foreground), uint16(s.Background), uint16(s.Off)
}
