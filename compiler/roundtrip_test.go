package compiler

import (
	"context"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/syssam/resgen/compiler/gen"
	"github.com/syssam/resgen/ecosystem"
)

// TestRoundTrip generates the board fixture inside a scratch module and
// type-checks the result without the resgen tag, the way a firmware build
// sees it.
func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/roundtrip\n\ngo 1.22\n"), 0o644))
	for _, name := range []string{"board.go", "groups.go"} {
		data, err := os.ReadFile(filepath.Join("testdata", "board", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	_, err := New(&gen.Config{Ecosystem: ecosystem.Standin}, WithDir(dir)).Generate(context.Background(), ".")
	require.NoError(t, err)

	pkgs, err := packages.Load(&packages.Config{
		Context: context.Background(),
		Dir:     dir,
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}, ".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	require.Empty(t, pkgs[0].Errors)
	scope := pkgs[0].Types.Scope()

	record := scope.Lookup("ButtonResources")
	require.NotNil(t, record)
	st, ok := record.Type().Underlying().(*types.Struct)
	require.True(t, ok)
	require.Equal(t, 2, st.NumFields())
	assert.Equal(t, "User", st.Field(0).Name())
	assert.Equal(t, "example.com/roundtrip.Peri[example.com/roundtrip.PC13]", st.Field(0).Type().String())
	assert.Equal(t, "Wakeup", st.Field(1).Name())
	assert.Equal(t, "example.com/roundtrip.Peri[example.com/roundtrip.PA0]", st.Field(1).Type().String())

	alias := scope.Lookup("WakeupPin")
	require.NotNil(t, alias)
	assert.True(t, types.Identical(alias.Type(), scope.Lookup("PA0").Type()))
	assert.Nil(t, scope.Lookup("Bus"), "no_aliases groups declare no default aliases")

	fn, ok := scope.Lookup("ExtractButtonResources").(*types.Func)
	require.True(t, ok)
	sig := fn.Type().(*types.Signature)
	require.Equal(t, 1, sig.Params().Len())
	assert.Equal(t, "*example.com/roundtrip.Peripherals", sig.Params().At(0).Type().String())
	assert.True(t, types.Identical(record.Type(), sig.Results().At(0).Type()))

	_, ok = scope.Lookup("ExtractFlashResources").(*types.Func)
	assert.True(t, ok)
}
