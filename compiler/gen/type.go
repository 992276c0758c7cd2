package gen

import (
	"fmt"
	"go/token"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/resgen"
	"github.com/syssam/resgen/compiler/load"
	"github.com/syssam/resgen/ecosystem"
)

// The following types are the resolved form of the loaded definitions that
// the generator emits code from.
type (
	// Group is a resource group ready for emission.
	Group struct {
		def *load.Group
		// Name of the record type.
		Name string
		// Visibility of the record, its fields, aliases and extractor.
		Visibility load.Visibility
		// GenerateAliases reports whether default aliases are emitted.
		GenerateAliases bool
		// Package, PkgPath and Dir locate the definition.
		Package, PkgPath, Dir string
		// Fields in declaration order.
		Fields []*Field
		// Aliases in field order.
		Aliases []*Alias
		// Wrapper of every field.
		Wrapper Wrapper
		// Container is the type the extractor takes a pointer to.
		Container *load.TypeRef
		// Extractor is the Go identifier of the extractor function.
		Extractor string
		// take reports whether the extractor moves handles with resgen.Take.
		take bool
	}

	// Field is a resolved field of a group.
	Field struct {
		// Name is the field name as declared.
		Name string
		// GoName is the name of the field in the generated record.
		GoName string
		// Type is the type as declared in the definition.
		Type *load.TypeRef
		// Resource is the declared type with one level of generic wrapping
		// removed.
		Resource *load.TypeRef
		// Wrapped reports whether Type already is the ownership wrapper.
		Wrapped bool
		// Attributes are the retained comment lines, in order.
		Attributes []string
		// Alias is the custom alias override, if any.
		Alias *AliasSpec
		// Tag is the struct tag of the field.
		Tag string
		// Member is the container member the extractor reads.
		Member string
	}
)

// NewGroup resolves a loaded definition against the wrapper and container
// of the run.
func NewGroup(c *Config, def *load.Group, w ecosystem.Wrapper, container ecosystem.Ident) (*Group, error) {
	wrapper, err := newWrapper(w, def)
	if err != nil {
		return nil, err
	}
	g := &Group{
		def:             def,
		Name:            def.Name,
		Visibility:      def.Visibility,
		GenerateAliases: def.GenerateAliases,
		Package:         def.Package,
		PkgPath:         def.PkgPath,
		Dir:             def.Dir,
		Wrapper:         wrapper,
		Container:       def.Container,
		Extractor:       extractorName(def.Name, def.Visibility),
		take:            c.enabled(FeatureTake),
	}
	if g.Container == nil {
		g.Container = identRef(local(container, def.PkgPath))
	}
	names := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		field, err := newField(g, f)
		if err != nil {
			return nil, err
		}
		if token.IsExported(field.GoName) != g.Visibility.Exported() {
			return nil, invalidGroup(def, f.Name, "field name %s cannot be made %s", f.Name, g.Visibility)
		}
		if prev, ok := names[field.GoName]; ok {
			return nil, invalidGroup(def, f.Name, "field name %s collides with field %s in the %s record", field.GoName, prev, g.Visibility)
		}
		names[field.GoName] = f.Name
		g.Fields = append(g.Fields, field)
		if a := synthesizeAlias(g, field); a != nil {
			g.Aliases = append(g.Aliases, a)
		}
	}
	if err := checkCollisions(g); err != nil {
		return nil, err
	}
	return g, nil
}

func newField(g *Group, f *load.Field) (*Field, error) {
	attrs, alias, err := resolveAttributes(g.def, f)
	if err != nil {
		return nil, err
	}
	field := &Field{
		Name:       f.Name,
		GoName:     visible(f.Name, g.Visibility),
		Type:       f.Type,
		Resource:   f.Type.Unwrap(),
		Wrapped:    g.Wrapper.Wraps(f.Type),
		Attributes: attrs,
		Alias:      alias,
		Tag:        f.Tag,
		Member:     f.Name,
	}
	if g.def.Members == load.MemberByType {
		field.Member = field.Resource.Name
	}
	return field, nil
}

// Canonical returns the canonical name of the extractor, the snake_case form
// of the record name. It also names the generated file.
func (g *Group) Canonical() string { return snake(g.Name) }

// File returns the name of the generated file.
func (g *Group) File() string { return g.Canonical() + "_resgen.go" }

// ExtractorVar returns the name of the exported function value re-exporting
// the extractor of a restricted group, or "" for other groups.
func (g *Group) ExtractorVar() string {
	if g.Visibility != load.Restricted {
		return ""
	}
	return exported(g.Name) + "Extractor"
}

// Pos returns the position of the definition.
func (g *Group) Pos() string { return g.def.Pos }

// FieldType returns the type of f in the generated record.
func (g *Group) FieldType(f *Field) *load.TypeRef {
	if f.Wrapped {
		return f.Type
	}
	return g.Wrapper.Of(f.Resource)
}

// Artifacts holds the declarations generated for a group.
type Artifacts struct {
	Aliases      []jen.Code
	Record       jen.Code
	Extractor    jen.Code
	ExtractorVar jen.Code // nil unless the group is restricted
}

// Artifacts returns the declarations of the group.
func (g *Group) Artifacts() *Artifacts {
	a := &Artifacts{
		Record:    g.record(),
		Extractor: g.extractor(),
	}
	for _, alias := range g.Aliases {
		a.Aliases = append(a.Aliases, alias.Code())
	}
	if v := g.ExtractorVar(); v != "" {
		a.ExtractorVar = jen.Var().Id(v).Op("=").Id(g.Extractor)
	}
	return a
}

// record returns the rewritten record declaration.
func (g *Group) record() jen.Code {
	return jen.Type().Id(g.Name).StructFunc(func(s *jen.Group) {
		for _, f := range g.Fields {
			comments(s, f.Attributes)
			field := s.Id(f.GoName).Add(typeCode(g.FieldType(f)))
			if tags := tagMap(f.Tag); len(tags) > 0 {
				field.Tag(tags)
			}
		}
	})
}

// comments adds the retained comment lines to s.
func comments(s *jen.Group, lines []string) {
	for _, l := range lines {
		s.Comment(l)
	}
}

func invalidGroup(g *load.Group, field, format string, args ...any) error {
	err := resgen.NewInvalidInputError(g.Name, field, fmt.Sprintf(format, args...))
	err.Pos = g.Pos
	return err
}
