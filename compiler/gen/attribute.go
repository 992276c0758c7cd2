package gen

import (
	"go/token"
	"strings"

	"github.com/syssam/resgen"
	"github.com/syssam/resgen/compiler/load"
)

// AliasSpec is a custom alias requested by a field directive.
type AliasSpec struct {
	Name string
	// Type is the aliased type. Nil means the field's resource type.
	Type *load.TypeRef
}

// resolveAttributes splits the raw comment lines of a field into the lines
// retained on the generated code and the alias directive, if any.
func resolveAttributes(g *load.Group, f *load.Field) ([]string, *AliasSpec, error) {
	var (
		retained []string
		spec     *AliasSpec
	)
	for _, line := range f.Attributes {
		value, ok := aliasValue(line)
		if !ok {
			retained = append(retained, line)
			continue
		}
		if spec != nil {
			return nil, nil, resgen.NewMalformedAliasError(g.Name, f.Name, value, "a field accepts a single alias directive")
		}
		s, err := parseAlias(g, f, value)
		if err != nil {
			return nil, nil, err
		}
		spec = s
	}
	return retained, spec, nil
}

// aliasValue returns the value of an alias directive line.
func aliasValue(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, load.AliasDirective)
	if !ok || rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// parseAlias parses "Name" or "Name = Type".
func parseAlias(g *load.Group, f *load.Field, value string) (*AliasSpec, error) {
	name, typ, hasType := strings.Cut(value, "=")
	name, typ = strings.TrimSpace(name), strings.TrimSpace(typ)
	switch {
	case name == "":
		return nil, resgen.NewMalformedAliasError(g.Name, f.Name, value, "missing alias name")
	case !token.IsIdentifier(name) || name == "_":
		return nil, resgen.NewMalformedAliasError(g.Name, f.Name, value, "alias name must be a Go identifier")
	case token.IsExported(name) != g.Visibility.Exported():
		return nil, resgen.NewMalformedAliasError(g.Name, f.Name, value, "alias visibility must match the "+g.Visibility.String()+" group")
	case hasType && typ == "":
		return nil, resgen.NewMalformedAliasError(g.Name, f.Name, value, "missing alias type")
	}
	spec := &AliasSpec{Name: name}
	if hasType {
		t, err := load.ParseTypeExpr(typ, g.Imports)
		if err != nil {
			e := resgen.NewMalformedAliasError(g.Name, f.Name, value, "alias type is not a valid type reference")
			e.Cause = err
			return nil, e
		}
		spec.Type = t
	}
	return spec, nil
}
