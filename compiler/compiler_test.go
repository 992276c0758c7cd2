package compiler

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/resgen/compiler/gen"
	"github.com/syssam/resgen/ecosystem"
)

const keypadSchema = `package: keypad
groups:
  - name: KeypadResources
    members: type
    fields:
      - {name: row, type: PB0}
      - {name: col, type: PB1, alias: ColumnPin}
`

func writeSchema(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "keypad.resgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestGenerate(t *testing.T) {
	target := t.TempDir()
	var logs bytes.Buffer
	c := New(
		&gen.Config{Ecosystem: ecosystem.Standin, Target: target},
		WithDir("testdata"),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	m, err := c.Generate(context.Background(), "./board")
	require.NoError(t, err)
	assert.Equal(t, 2, m.FilesGenerated)
	assert.Contains(t, logs.String(), "generated resource groups")

	data, err := os.ReadFile(filepath.Join(target, "button_resources_resgen.go"))
	require.NoError(t, err)
	got := squash(string(data))
	assert.Contains(t, got, "type User = PC13 type WakeupPin = PA0")
	assert.Contains(t, got, "type ButtonResources struct { User Peri[PC13] // wakeup capable Wakeup Peri[PA0] }")
	assert.Contains(t, got, "r.User = p.PC13 // wakeup capable r.Wakeup = p.PA0")

	data, err = os.ReadFile(filepath.Join(target, "flash_resources_resgen.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "type Bus")

	m, err = c.Generate(context.Background(), "./board")
	require.NoError(t, err)
	assert.Equal(t, gen.Metrics{FilesUnchanged: 2}, m)
}

func TestGenerateSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, keypadSchema)
	require.NoError(t, Generate(context.Background(), &gen.Config{Ecosystem: ecosystem.Standin}, path))

	data, err := os.ReadFile(filepath.Join(dir, "keypad_resources_resgen.go"))
	require.NoError(t, err)
	got := squash(string(data))
	assert.Contains(t, got, "package keypad")
	assert.Contains(t, got, "type Row = PB0 type ColumnPin = PB1")
	assert.Contains(t, got, "func ExtractKeypadResources(p *Peripherals) (r KeypadResources) { r.Row = p.PB0 r.Col = p.PB1 return r }")
}

func TestGenerateErrors(t *testing.T) {
	t.Run("missing config", func(t *testing.T) {
		_, err := New(nil).Generate(context.Background(), "./board")
		assert.True(t, gen.IsConfigError(err))
	})

	t.Run("invalid schema", func(t *testing.T) {
		path := writeSchema(t, t.TempDir(), "groups:\n  - name: 1Bad\n")
		_, err := New(&gen.Config{Ecosystem: ecosystem.Standin}).Generate(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid group name")
	})

	t.Run("missing ecosystem", func(t *testing.T) {
		if _, err := ecosystem.Selected(); err == nil {
			t.Skip("an ecosystem is selected by build tags")
		}
		path := writeSchema(t, t.TempDir(), keypadSchema)
		_, err := New(&gen.Config{}).Generate(context.Background(), path)
		require.Error(t, err)
	})
}
