// Command statbar renders live stat-bar widgets for the Go runtime of
// the process itself. It doubles as the reference harness for the
// widget library: presets come from .statbar.yaml, frames go through
// the terminal or JSON renderer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/dkoosis/statbar/internal/config"
	"github.com/dkoosis/statbar/pkg/render"
	"github.com/dkoosis/statbar/pkg/statbar"
	"github.com/dkoosis/statbar/pkg/trace"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("statbar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFlag := fs.String("config", "", "path to a config file (overrides .statbar.yaml lookup)")
	themeFlag := fs.String("theme", "", "color theme: default or mono")
	hzFlag := fs.Int("hz", 0, "samples per second (overrides config)")
	once := fs.Bool("once", false, "sample for one second, print each bar, exit")
	jsonOut := fs.Bool("json", false, "with -once, emit frames as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var cfg *config.AppConfig
	var err error
	if *configFlag != "" {
		cfg, err = config.LoadFile(*configFlag)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		fmt.Fprintf(stderr, "statbar: %v\n", err)
		return 1
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	if *hzFlag > 0 {
		cfg.RefreshHz = *hzFlag
	}
	if len(cfg.Bars) == 0 {
		cfg.Bars = defaultPresets()
	}

	rec := trace.NewRecorder(trace.DefaultMaxPeriods)
	samp := newSampler(rec)
	bars := make([]*statbar.Bar, 0, len(cfg.Bars))
	for _, p := range cfg.Bars {
		bc := p.BarConfig()
		bc.RefreshInterval = cfg.RefreshInterval()
		bars = append(bars, statbar.New(bc))
	}

	if *once || !isTerminal(stdout) {
		return runOnce(stdout, cfg, samp, rec, bars, *jsonOut)
	}

	m := newModel(cfg, samp, rec, bars)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(stderr, "statbar: %v\n", err)
		return 1
	}
	return 0
}

func defaultPresets() []config.Preset {
	return []config.Preset{
		{Stat: "goroutines"},
		{Stat: "heap", Label: "Heap In Use"},
		{Stat: "allocs", Label: "Allocations"},
		{Stat: "gc pause", Label: "GC Pause"},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runOnce is the non-interactive path: sample for a second at the
// configured rate, then print one frame per bar and exit.
func runOnce(stdout io.Writer, cfg *config.AppConfig, samp *sampler, rec *trace.Recorder, bars []*statbar.Bar, asJSON bool) int {
	interval := cfg.RefreshInterval()
	deadline := time.Now().Add(time.Second)
	for now := time.Now(); now.Before(deadline); now = time.Now() {
		samp.sample(now)
		time.Sleep(interval)
	}
	samp.sample(time.Now())

	var r render.Renderer
	if asJSON {
		r = render.NewJSON()
	} else {
		r = render.NewTerminal(render.ThemeByName(cfg.Theme))
	}

	width := 60
	if f, ok := stdout.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	now := time.Now()
	for _, b := range bars {
		b.Resize(width, b.RequiredHeight())
		fmt.Fprintln(stdout, r.Render(b.Frame(now, rec)))
	}
	return 0
}
