package render

import (
	"strings"
	"testing"

	"github.com/dkoosis/statbar/pkg/scene"
)

func testFrame() scene.Frame {
	fr := scene.Frame{Width: 10, Height: 3}
	fr.Text(0, 0, "CPU", scene.AlignLeft, false)
	fr.Text(9, 0, "42", scene.AlignRight, true)
	fr.Fill(0, 1, 10, 1, scene.PaintBackground)
	fr.Fill(2, 1, 1, 1, scene.PaintHistory)
	return fr
}

func TestTerminal_RenderMono(t *testing.T) {
	out := NewTerminal(MonoTheme()).Render(testFrame())
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "CPU     42" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[1] != "..*......." {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != strings.Repeat(" ", 10) {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestTerminal_ClipsOutOfRangeDraws(t *testing.T) {
	fr := scene.Frame{Width: 4, Height: 2}
	fr.Fill(-2, -1, 100, 100, scene.PaintRange)
	fr.Text(3, 0, "overflowing", scene.AlignLeft, false)
	fr.Text(0, 5, "off screen", scene.AlignLeft, false)

	out := NewTerminal(MonoTheme()).Render(fr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if lines[0] != ":::o" {
		t.Errorf("row 0 = %q", lines[0])
	}
	if lines[1] != "::::" {
		t.Errorf("row 1 = %q", lines[1])
	}
}

func TestTerminal_EmptyFrame(t *testing.T) {
	if out := NewTerminal(MonoTheme()).Render(scene.Frame{}); out != "" {
		t.Errorf("empty frame rendered %q, want empty string", out)
	}
}

func TestJSON_Render(t *testing.T) {
	out := NewJSON().Render(testFrame())
	for _, want := range []string{`"version": "1.0"`, `"Text": "CPU"`, `"Width": 10`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("mono").Name; got != "mono" {
		t.Errorf("ThemeByName(mono).Name = %q", got)
	}
	if got := ThemeByName("anything else").Name; got != "default" {
		t.Errorf("unknown theme should fall back to default, got %q", got)
	}
}
