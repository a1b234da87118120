// Package scene defines the draw commands a stat bar emits each frame.
// Scenes are pure data in cell coordinates; renderers decide presentation.
package scene

// Paint classifies a rectangle so renderers can choose styling.
type Paint int

const (
	PaintBackground Paint = iota // bar backdrop
	PaintRange                   // min/max band over the window
	PaintCurrent                 // instantaneous value marker
	PaintMean                    // mean value marker
	PaintTick                    // labeled tick line
	PaintTickFaint               // unlabeled tick line
	PaintHistory                 // one history sample mark
)

// Align controls how a label anchors to its X coordinate.
type Align int

const (
	AlignLeft  Align = iota // text starts at X
	AlignRight              // text ends at X
)

// Rect is a filled rectangle; (X, Y) is the top-left corner, rows grow
// downward. Renderers clip rects that extend past the frame.
type Rect struct {
	X, Y, W, H int
	Paint      Paint
}

// Label is a run of text anchored at (X, Y).
type Label struct {
	X, Y  int
	Text  string
	Align Align
	Faint bool
}

// Frame is one widget's draw list for a single render pass.
type Frame struct {
	Width, Height int
	Rects         []Rect
	Labels        []Label
}

// Fill appends a rectangle to the frame.
func (f *Frame) Fill(x, y, w, h int, p Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	f.Rects = append(f.Rects, Rect{X: x, Y: y, W: w, H: h, Paint: p})
}

// Text appends a label to the frame.
func (f *Frame) Text(x, y int, text string, align Align, faint bool) {
	if text == "" {
		return
	}
	f.Labels = append(f.Labels, Label{X: x, Y: y, Text: text, Align: align, Faint: faint})
}
