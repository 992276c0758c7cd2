package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/resgen"
	"github.com/syssam/resgen/compiler/load"
)

// Alias is a type alias declaration emitted for a field.
type Alias struct {
	Name  string
	Type  *load.TypeRef
	Field string // field the alias was synthesized for
	// Custom reports whether the name comes from an alias directive.
	Custom bool
}

// Code returns the alias declaration.
func (a *Alias) Code() jen.Code {
	return jen.Type().Id(a.Name).Op("=").Add(typeCode(a.Type))
}

// synthesizeAlias returns the alias of field f, or nil when the group
// declares none for it. A custom alias takes precedence; otherwise the
// default alias is emitted when the group generates aliases.
func synthesizeAlias(g *Group, f *Field) *Alias {
	switch {
	case f.Alias != nil:
		a := &Alias{Name: f.Alias.Name, Type: f.Alias.Type, Field: f.Name, Custom: true}
		if a.Type == nil {
			a.Type = f.Resource
		}
		return a
	case g.GenerateAliases:
		return &Alias{Name: aliasName(f.Name, g.Visibility), Type: f.Resource, Field: f.Name}
	default:
		return nil
	}
}

// checkCollisions fails on the first name declared twice by the group: two
// aliases, or an alias and the record, extractor, extractor variable, or a
// container, wrapper or scope tag declared in the package itself.
func checkCollisions(g *Group) error {
	owners := make(map[string]string)
	declare := func(name, owner string) error {
		if prev, ok := owners[name]; ok {
			return resgen.NewAliasCollisionError(g.Name, name, prev, owner)
		}
		owners[name] = owner
		return nil
	}
	names := [][2]string{{g.Name, "record " + g.Name}, {g.Extractor, "extractor " + g.Extractor}}
	if v := g.ExtractorVar(); v != "" {
		names = append(names, [2]string{v, "extractor variable " + v})
	}
	if c := g.Container; c != nil && c.PkgPath == "" {
		names = append(names, [2]string{c.Name, "container " + c.Name})
	}
	if w := g.Wrapper.Type; w.PkgPath == "" {
		names = append(names, [2]string{w.Name, "wrapper " + w.Name})
	}
	if s := g.Wrapper.Scope; s != nil && s.PkgPath == "" {
		names = append(names, [2]string{s.Name, "scope tag " + s.Name})
	}
	for _, n := range names {
		if err := declare(n[0], n[1]); err != nil {
			return err
		}
	}
	for _, a := range g.Aliases {
		owner := "field " + a.Field
		if err := declare(a.Name, owner); err != nil {
			return err
		}
		if a.Type.PkgPath == "" && !a.Type.Generic() && a.Type.Name == a.Name {
			return resgen.NewAliasCollisionError(g.Name, a.Name, owner, "type "+a.Type.Name)
		}
	}
	return nil
}
