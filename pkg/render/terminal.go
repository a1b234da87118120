package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/statbar/pkg/scene"
)

// style identifiers per grid cell; runs of equal ids render together.
const (
	sidPlain = iota
	sidLabel
	sidValue
	sidBackdrop
	sidRange
	sidCurrent
	sidMean
	sidTick
	sidTickFaint
	sidHistory
)

// wideTail marks the continuation cell of a double-width rune.
const wideTail = rune(-1)

// Terminal rasterizes a scene frame into styled terminal output. Rects
// are painted in order, labels on top; anything past the frame is
// clipped.
type Terminal struct {
	theme Theme
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme) *Terminal {
	return &Terminal{theme: theme}
}

type gridCell struct {
	r   rune
	sid int
}

// Render rasterizes the frame.
func (t *Terminal) Render(frame scene.Frame) string {
	if frame.Width <= 0 || frame.Height <= 0 {
		return ""
	}

	grid := make([][]gridCell, frame.Height)
	for y := range grid {
		grid[y] = make([]gridCell, frame.Width)
		for x := range grid[y] {
			grid[y][x] = gridCell{r: ' ', sid: sidPlain}
		}
	}

	for _, r := range frame.Rects {
		glyph, sid := t.paintCell(r.Paint)
		for y := r.Y; y < r.Y+r.H; y++ {
			if y < 0 || y >= frame.Height {
				continue
			}
			for x := r.X; x < r.X+r.W; x++ {
				if x < 0 || x >= frame.Width {
					continue
				}
				grid[y][x] = gridCell{r: glyph, sid: sid}
			}
		}
	}

	for _, l := range frame.Labels {
		t.placeLabel(grid, frame, l)
	}

	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteString("\n")
		}
		t.flushRow(&sb, row)
	}
	return sb.String()
}

func (t *Terminal) placeLabel(grid [][]gridCell, frame scene.Frame, l scene.Label) {
	if l.Y < 0 || l.Y >= frame.Height {
		return
	}
	x := l.X
	if l.Align == scene.AlignRight {
		x = l.X - runewidth.StringWidth(l.Text) + 1
	}
	sid := sidLabel
	if l.Faint {
		sid = sidValue
	}
	for _, r := range l.Text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x < frame.Width {
			grid[l.Y][x] = gridCell{r: r, sid: sid}
			if w == 2 && x+1 < frame.Width {
				grid[l.Y][x+1] = gridCell{r: wideTail, sid: sid}
			}
		}
		x += w
	}
}

func (t *Terminal) flushRow(sb *strings.Builder, row []gridCell) {
	runStart := 0
	var run strings.Builder
	flush := func(sid int) {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(t.styleFor(sid).Render(run.String()))
		run.Reset()
	}
	for i, c := range row {
		if c.r == wideTail {
			continue
		}
		if i > 0 && c.sid != row[runStart].sid {
			flush(row[runStart].sid)
			runStart = i
		}
		run.WriteRune(c.r)
	}
	flush(row[runStart].sid)
}

func (t *Terminal) paintCell(p scene.Paint) (rune, int) {
	g := t.theme.Glyphs
	switch p {
	case scene.PaintBackground:
		return g.Backdrop, sidBackdrop
	case scene.PaintRange:
		return g.Range, sidRange
	case scene.PaintCurrent:
		return g.Current, sidCurrent
	case scene.PaintMean:
		return g.Mean, sidMean
	case scene.PaintTick:
		return g.Tick, sidTick
	case scene.PaintTickFaint:
		return g.TickFaint, sidTickFaint
	case scene.PaintHistory:
		return g.History, sidHistory
	default:
		return ' ', sidPlain
	}
}

func (t *Terminal) styleFor(sid int) lipgloss.Style {
	switch sid {
	case sidLabel:
		return t.theme.Label
	case sidValue:
		return t.theme.Value
	case sidBackdrop:
		return t.theme.Backdrop
	case sidRange:
		return t.theme.Range
	case sidCurrent:
		return t.theme.Current
	case sidMean:
		return t.theme.Mean
	case sidTick:
		return t.theme.Tick
	case sidTickFaint:
		return t.theme.TickFaint
	case sidHistory:
		return t.theme.History
	default:
		return lipgloss.NewStyle()
	}
}
