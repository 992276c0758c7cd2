package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/resgen"
)

func TestParseYAML(t *testing.T) {
	t.Run("parses groups", func(t *testing.T) {
		groups, err := ParseYAML("board/leds.resgen.yaml", []byte(`
package: board
pkg_path: example.com/fw/board
imports:
  hal: example.com/fw/hal
groups:
  - name: LedResources
    mode: no_aliases
    container: hal.Peripherals
    fields:
      - {name: r, type: PA2}
      - name: tim2
        type: hal.TIM2
        alias: PWMTimer
        attributes: ["// shared with the PWM block"]
  - name: usbResources
    visibility: private
    members: type
    scope: Boot
    fields:
      - {name: usb_dm, type: "Box[PA11]"}
`))
		require.NoError(t, err)
		require.Len(t, groups, 2)

		led := groups[0]
		assert.Equal(t, "LedResources", led.Name)
		assert.Equal(t, "board", led.Package)
		assert.Equal(t, "board", led.Dir)
		assert.Equal(t, Public, led.Visibility)
		assert.False(t, led.GenerateAliases)
		assert.Equal(t, "example.com/fw/hal", led.Container.PkgPath)
		assert.Equal(t, "board/leds.resgen.yaml:7", led.Pos)
		require.Len(t, led.Fields, 2)
		assert.Equal(t, "hal.TIM2", led.Fields[1].Type.String())
		assert.Equal(t, []string{"// shared with the PWM block", "//resgen:alias PWMTimer"}, led.Fields[1].Attributes)

		usb := groups[1]
		assert.Equal(t, Private, usb.Visibility)
		assert.True(t, usb.GenerateAliases)
		assert.Equal(t, MemberByType, usb.Members)
		assert.Equal(t, "Boot", usb.Scope.Name)
		assert.Equal(t, "PA11", usb.Fields[0].Type.Unwrap().Name)
	})

	t.Run("package defaults to directory name", func(t *testing.T) {
		groups, err := ParseYAML("fw/radio/radio.resgen.yaml", []byte(`
groups:
  - name: RadioResources
    visibility: restricted
    fields: [{name: spi, type: SPI1}]
`))
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "radio", groups[0].Package)
		assert.Equal(t, Restricted, groups[0].Visibility)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := ParseYAML("bad.resgen.yaml", []byte("groups: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.resgen.yaml")
	})
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{"bad mode", "groups: [{name: G, mode: aliases_off, fields: [{name: a, type: PA2}]}]", `unrecognized mode "aliases_off"`},
		{"bad visibility", "groups: [{name: G, visibility: crate, fields: [{name: a, type: PA2}]}]", "unknown visibility"},
		{"bad name", "groups: [{name: 1G, fields: [{name: a, type: PA2}]}]", "invalid group name"},
		{"no fields", "groups: [{name: G}]", "no fields"},
		{"bad field name", "groups: [{name: G, fields: [{name: a-b, type: PA2}]}]", "invalid field name"},
		{"duplicate field", "groups: [{name: G, fields: [{name: a, type: PA2}, {name: a, type: PA3}]}]", "duplicate field name"},
		{"bad field type", "groups: [{name: G, fields: [{name: a, type: '[]PA2'}]}]", "must be named types"},
		{"unknown qualifier", "groups: [{name: G, fields: [{name: a, type: hal.PA2}]}]", "unknown package qualifier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := ParseYAML("p/g.resgen.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.Empty(t, groups)
			assert.True(t, resgen.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
