// Package svg serializes bar patterns into standalone SVG documents.
// Each pattern character becomes one rectangle; colors alternate black
// and white by position, widths scale with the character's weight.
package svg

import (
	"fmt"
	"io"
	"strings"
)

// Height is the fixed bar height in viewBox units.
const Height = 100

const (
	black = "#000000"
	white = "#ffffff"
)

// Rect is a single rectangle drawing primitive.
type Rect struct {
	X     int
	Width int
	Fill  string
}

// Rects converts a bar pattern over {'1','2'} into rectangle
// primitives placed left to right with no gaps. stripeWidth scales a
// weight-1 stripe.
func Rects(pattern string, stripeWidth int) []Rect {
	rects := make([]Rect, 0, len(pattern))
	x := 0
	for i := 0; i < len(pattern); i++ {
		fill := black
		if i%2 == 1 {
			fill = white
		}
		w := stripeWidth * int(pattern[i]-'0')
		rects = append(rects, Rect{X: x, Width: w, Fill: fill})
		x += w
	}
	return rects
}

// Render returns the bar pattern as a serialized SVG document. The
// root element fills its container; the viewBox spans the summed
// stripe widths.
func Render(pattern string, stripeWidth int) string {
	var sb strings.Builder
	renderTo(&sb, pattern, stripeWidth)
	return sb.String()
}

// RenderTo writes the serialized SVG document into w, the external
// rendering sink.
func RenderTo(w io.Writer, pattern string, stripeWidth int) error {
	var sb strings.Builder
	renderTo(&sb, pattern, stripeWidth)
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderTo(sb *strings.Builder, pattern string, stripeWidth int) {
	rects := Rects(pattern, stripeWidth)

	total := 0
	for _, r := range rects {
		total += r.Width
	}

	fmt.Fprintf(sb, `<svg width="100%%" height="100%%" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, total, Height)
	for _, r := range rects {
		fmt.Fprintf(sb, `<rect width="%d" height="%d" fill="%s" x="%d" y="0"/>`, r.Width, Height, r.Fill, r.X)
	}
	sb.WriteString("</svg>")
}
