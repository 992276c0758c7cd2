package load

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeExpr(t *testing.T) {
	imports := map[string]string{"hal": "example.com/fw/hal"}
	tests := []struct {
		expr    string
		want    string
		unwrap  string
		pkgPath string
		wantErr bool
	}{
		{expr: "PA2", want: "PA2", unwrap: "PA2"},
		{expr: "hal.TIM2", want: "hal.TIM2", unwrap: "hal.TIM2", pkgPath: "example.com/fw/hal"},
		{expr: "Box[PA2]", want: "Box[PA2]", unwrap: "PA2"},
		{expr: "hal.Pair[Boot, hal.PA2]", want: "hal.Pair[Boot, hal.PA2]", unwrap: "hal.PA2", pkgPath: "example.com/fw/hal"},
		{expr: "(PA2)", want: "PA2", unwrap: "PA2"},
		{expr: "*PA2", wantErr: true},
		{expr: "[]PA2", wantErr: true},
		{expr: "map[string]PA2", wantErr: true},
		{expr: "gpio.PA2", wantErr: true},
		{expr: "Box[PA2][PA3]", wantErr: true},
		{expr: "PA2 +", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ref, err := ParseTypeExpr(tt.expr, imports)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref.String())
			assert.Equal(t, tt.unwrap, ref.Unwrap().String())
			assert.Equal(t, tt.pkgPath, ref.PkgPath)
		})
	}
}

func TestTypeRefSame(t *testing.T) {
	imports := map[string]string{"hal": "example.com/fw/hal", "h": "example.com/fw/hal"}
	a, err := ParseTypeExpr("hal.Box[PA2]", imports)
	require.NoError(t, err)
	b, err := ParseTypeExpr("h.Box[PA2]", imports)
	require.NoError(t, err)
	c, err := ParseTypeExpr("hal.Box[PA3]", imports)
	require.NoError(t, err)

	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
	assert.False(t, a.Same(nil))
	assert.True(t, (*TypeRef)(nil).Same(nil))
}

func TestImportName(t *testing.T) {
	assert.Equal(t, "hal", importName("example.com/fw/hal"))
	assert.Equal(t, "msgpack", importName("github.com/vmihailenco/msgpack/v5"))
	assert.Equal(t, "yaml", importName("github.com/goccy/go-yaml"))
	assert.Equal(t, "v5", importName("v5"))
}

func TestVisibility(t *testing.T) {
	for _, v := range []Visibility{Public, Restricted, Private} {
		b, err := v.MarshalText()
		require.NoError(t, err)
		var got Visibility
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, v, got)
	}
	assert.True(t, Public.Exported())
	assert.True(t, Restricted.Exported())
	assert.False(t, Private.Exported())

	v, err := ParseVisibility("internal")
	require.NoError(t, err)
	assert.Equal(t, Restricted, v)
	_, err = ParseVisibility("pub(crate)")
	assert.Error(t, err)

	assert.Equal(t, Restricted, visibilityOf("Radio", "internal/radio"))
	assert.Equal(t, Restricted, visibilityOf("Radio", "example.com/fw/internal"))
	assert.Equal(t, Public, visibilityOf("Radio", "example.com/fw/internals"))
	assert.Equal(t, Private, visibilityOf("radio", "example.com/fw/internal/radio"))
}

func TestGroupJSON(t *testing.T) {
	g := &Group{
		Name:       "LedResources",
		Visibility: Restricted,
		Members:    MemberByType,
		Fields:     []*Field{{Name: "r", Type: &TypeRef{Name: "PA2"}}},
	}
	buf, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"visibility":"restricted"`)
	assert.Contains(t, string(buf), `"members":"type"`)

	var got Group
	require.NoError(t, json.Unmarshal(buf, &got))
	assert.Equal(t, g.Visibility, got.Visibility)
	assert.Equal(t, g.Members, got.Members)
	assert.Equal(t, "PA2", got.Fields[0].Type.Name)
}
