package load

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/resgen"
)

func TestLoad(t *testing.T) {
	cfg := &Config{Dir: "testdata"}
	groups, err := cfg.Load(context.Background(), "./board", "./internal/radio")
	require.NoError(t, err)
	require.Len(t, groups, 5)

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"AudioResources", "LedResources", "UsbResources", "AntennaResources", "RadioResources"}, names)

	audio := groups[0]
	assert.Equal(t, "board", audio.Package)
	assert.Equal(t, "github.com/syssam/resgen/compiler/load/testdata/board", audio.PkgPath)
	assert.Equal(t, MemberByType, audio.Members)
	assert.Equal(t, []string{"// codec bus"}, audio.Fields[0].Attributes)
	assert.True(t, strings.HasSuffix(audio.Pos, "audio.resgen.yaml:3"), audio.Pos)

	led := groups[1]
	assert.Equal(t, "board", led.Package)
	assert.Equal(t, "github.com/syssam/resgen/compiler/load/testdata/board", led.PkgPath)
	assert.Equal(t, Public, led.Visibility)
	assert.False(t, led.GenerateAliases)
	assert.Equal(t, MemberByType, led.Members)
	require.Len(t, led.Fields, 4)
	assert.Equal(t, "Tim2", led.Fields[3].Name)
	assert.Equal(t, []string{"// shared with the PWM block", "//resgen:alias PWMTimer"}, led.Fields[3].Attributes)
	assert.Equal(t, filepath.Join(mustAbs(t, "testdata"), "board"), led.Dir)

	usb := groups[2]
	assert.True(t, usb.GenerateAliases)
	assert.Equal(t, []string{"Dp", "Dm", "Usb"}, []string{usb.Fields[0].Name, usb.Fields[1].Name, usb.Fields[2].Name})

	antenna := groups[3]
	assert.Equal(t, "radio", antenna.Package)
	assert.Equal(t, "github.com/syssam/resgen/compiler/load/testdata/internal/radio", antenna.PkgPath)
	assert.Equal(t, Restricted, antenna.Visibility)

	radio := groups[4]
	assert.Equal(t, Restricted, radio.Visibility)
}

func TestLoadSchemaFileOfLoadedPackage(t *testing.T) {
	cfg := &Config{Dir: "testdata"}
	groups, err := cfg.Load(context.Background(), "./board", "board/audio.resgen.yaml")
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "AudioResources", groups[0].Name)
	assert.Equal(t, "github.com/syssam/resgen/compiler/load/testdata/board", groups[0].PkgPath)

	groups, err = cfg.Load(context.Background(), "internal/radio/antenna.resgen.yaml", "./internal/radio")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, Restricted, groups[0].Visibility)
}

func TestLoadSchemaFile(t *testing.T) {
	cfg := &Config{Dir: "testdata"}
	groups, err := cfg.Load(context.Background(), "board/audio.resgen.yaml")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "AudioResources", groups[0].Name)
	assert.Equal(t, filepath.Join("testdata", "board"), groups[0].Dir)
}

func TestLoadErrors(t *testing.T) {
	cfg := &Config{Dir: "testdata"}
	groups, err := cfg.Load(context.Background(), "./failure")
	require.Error(t, err)
	assert.Nil(t, groups)
	assert.True(t, resgen.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "found func declaration")
	assert.Contains(t, err.Error(), `unrecognized mode "some_mode"`)

	_, err = cfg.Load(context.Background(), "missing.resgen.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read schema")
}

func TestLoadBuildFlags(t *testing.T) {
	groups, err := (&Config{Dir: "testdata"}).Load(context.Background(), "./buildflags")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "ButtonResources", groups[0].Name)
	assert.Equal(t, "SensorResources", groups[1].Name)

	cfg := &Config{Dir: "testdata", BuildFlags: []string{"-tags=hidegroups"}}
	assert.Equal(t, []string{"-tags=hidegroups,resgen"}, cfg.buildFlags())
	groups, err = cfg.Load(context.Background(), "./buildflags")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "ButtonResources", groups[0].Name)
}

func mustAbs(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.Abs(p)
	require.NoError(t, err)
	return abs
}
