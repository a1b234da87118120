package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/statbar/pkg/statbar"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644)
	require.NoError(t, err)
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultRefreshHz, cfg.RefreshHz)
	assert.Empty(t, cfg.Bars)
}

func TestLoad_ParsesBars(t *testing.T) {
	dir := writeConfig(t, `
theme: mono
refresh_hz: 4
bars:
  - stat: goroutines
    show_history: true
  - stat: heap
    label: Heap In Use
    unit: MB
    min: 0
    max: 512
`)
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.RefreshInterval())
	require.Len(t, cfg.Bars, 2)
	assert.Equal(t, "goroutines", cfg.Bars[0].Stat)
	assert.True(t, cfg.Bars[0].ShowHistory)
	require.NotNil(t, cfg.Bars[1].Max)
	assert.Equal(t, 512.0, *cfg.Bars[1].Max)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	dir := writeConfig(t, "theme: mono\n")
	cfg, err := LoadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, DefaultRefreshHz, cfg.RefreshHz)
}

func TestLoadFile_MissingFileIsAnError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAMLIsAnError(t *testing.T) {
	dir := writeConfig(t, "bars: [unclosed")
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestPreset_BarConfig(t *testing.T) {
	max := 512.0
	show := false
	p := Preset{
		Stat:        "heap",
		Unit:        "MB",
		Max:         &max,
		ShowBar:     &show,
		Orientation: "horizontal",
	}
	cfg := p.BarConfig()

	assert.Equal(t, "Heap", cfg.Label, "label defaults to the title-cased stat name")
	assert.Equal(t, "MB", cfg.UnitLabel)
	assert.True(t, cfg.AutoScaleMin, "unset min stays auto")
	assert.False(t, cfg.AutoScaleMax, "explicit max pins the bound")
	assert.Equal(t, 512.0, cfg.BarMax)
	assert.False(t, cfg.ShowBar)
	assert.Equal(t, statbar.Horizontal, cfg.Orientation)
}

func TestPreset_BarConfigKeepsExplicitLabel(t *testing.T) {
	cfg := Preset{Stat: "gc", Label: "GC Pauses"}.BarConfig()
	assert.Equal(t, "GC Pauses", cfg.Label)
	assert.Equal(t, statbar.Vertical, cfg.Orientation)
}
