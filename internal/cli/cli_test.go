package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/resgen/compiler/gen"
)

const schema = `package: board
groups:
  - name: LedResources
    members: type
    fields:
      - {name: r, type: PA2}
      - {name: tim2, type: TIM2, alias: PWMTimer}
`

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "led.resgen.yaml"), schema)

	code, stdout, stderr := execute(t, "generate", "--no-color", "--log-level", "warn", "-e", "resgen_standin", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "1 written, 0 unchanged, 0 cached")

	data, err := os.ReadFile(filepath.Join(dir, "led_resources_resgen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "type PWMTimer = TIM2")
	assert.Contains(t, string(data), "func ExtractLedResources(p *Peripherals) (r LedResources)")

	code, stdout, _ = execute(t, "generate", "--no-color", "-e", "resgen_standin", path)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "0 written, 1 unchanged")
}

func TestGenerateConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "led.resgen.yaml"), schema)
	writeFile(t, filepath.Join(dir, ConfigFile), `ecosystem: rp2
features: [extract/take, schema/snapshot]
patterns: [led.resgen.yaml]
`)

	code, _, stderr := execute(t, "generate", "--no-color", "-C", dir)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(dir, "led_resources_resgen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "resgen.Peri[PA2]")
	assert.Contains(t, string(data), "resgen.Take(&p.PA2)")
	assert.FileExists(t, filepath.Join(dir, gen.SnapshotFile))
}

func TestGenerateFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "led.resgen.yaml"), schema)
	cfg := writeFile(t, filepath.Join(t.TempDir(), "resgen.yaml"), "ecosystem: rp2\nheader: Code generated by make. DO NOT EDIT.\n")

	code, _, stderr := execute(t, "--config", cfg, "generate", "--no-color", "-e", "resgen_standin", path)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(dir, "led_resources_resgen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "// Code generated by make. DO NOT EDIT.")
	assert.Contains(t, string(data), "R Peri[PA2]")
	assert.NotContains(t, string(data), "resgen.Peri")
}

func TestGenerateCommandErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "led.resgen.yaml"), schema)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown ecosystem", []string{"generate", "-e", "avr", path}, "unknown ecosystem"},
		{"unknown feature", []string{"generate", "-e", "rp2", "--features", "sql/upsert", path}, "unknown feature"},
		{"scope without wrapper", []string{"generate", "--scope", "example.com/hal.Static", path}, "--scope requires --wrapper"},
		{"bad log level", []string{"generate", "--log-level", "loud", path}, "unknown log level"},
		{"missing config", []string{"--config", filepath.Join(dir, "none.yaml"), "generate", path}, "read config"},
		{"invalid schema", []string{"generate", "-e", "rp2", writeFile(t, filepath.Join(dir, "bad.resgen.yaml"), "groups:\n  - name: X\n")}, "resource group has no fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := execute(t, append([]string{"--no-color"}, tt.args...)...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, "error: ")
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestEcosystemCommand(t *testing.T) {
	code, stdout, _ := execute(t, "--no-color", "ecosystem")
	require.Equal(t, 0, code)
	for _, want := range []string{"NAME", "stm32", "nrf", "rp2", "resgen_standin", "github.com/syssam/resgen.ScopedPeri", "github.com/syssam/resgen.Static"} {
		assert.Contains(t, stdout, want)
	}
}

func TestPrintError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	printError(&buf, fmt.Errorf("load: %w", errors.Join(errors.New("first"), errors.New("second"))))
	assert.Equal(t, "error: load: first\nerror: second\n", buf.String())
}
