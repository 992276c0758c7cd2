package gen

import (
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/resgen/compiler/load"
	"github.com/syssam/resgen/ecosystem"
)

// Wrapper is the ownership handle every field of a group is wrapped in.
type Wrapper struct {
	Type ecosystem.Ident
	// Scope is the scope tag argument of scoped wrappers; nil otherwise.
	Scope *load.TypeRef
}

// newWrapper resolves the wrapper of group g. A scope= option replaces the
// default scope tag and requires a scoped wrapper.
func newWrapper(w ecosystem.Wrapper, g *load.Group) (Wrapper, error) {
	r := Wrapper{Type: local(w.Ident, g.PkgPath)}
	if w.Scope != nil {
		r.Scope = identRef(local(*w.Scope, g.PkgPath))
	}
	if g.Scope != nil {
		if r.Scope == nil {
			return Wrapper{}, invalidGroup(g, "", "scope=%s requires a scoped wrapper, %s takes no scope", g.Scope, w.Ident)
		}
		r.Scope = g.Scope
	}
	return r, nil
}

// Scoped reports whether the wrapper takes a scope argument.
func (w Wrapper) Scoped() bool { return w.Scope != nil }

// Wraps reports whether t is already an instance of the wrapper.
func (w Wrapper) Wraps(t *load.TypeRef) bool {
	if !t.Generic() {
		return false
	}
	return (&load.TypeRef{PkgPath: t.PkgPath, Name: t.Name}).Same(identRef(w.Type))
}

// Of returns the wrapped form of the resource type t.
func (w Wrapper) Of(t *load.TypeRef) *load.TypeRef {
	r := identRef(w.Type)
	if w.Scope != nil {
		r.Args = append(r.Args, w.Scope)
	}
	r.Args = append(r.Args, t)
	return r
}

// local drops the import path of identifiers declared in the package pkgPath.
func local(id ecosystem.Ident, pkgPath string) ecosystem.Ident {
	if id.PkgPath == pkgPath {
		id.PkgPath = ""
	}
	return id
}

func identRef(id ecosystem.Ident) *load.TypeRef {
	t := &load.TypeRef{PkgPath: id.PkgPath, Name: id.Name}
	if id.PkgPath != "" {
		t.Pkg = path.Base(id.PkgPath)
	}
	return t
}

// typeCode returns the Jennifer code of a type reference.
func typeCode(t *load.TypeRef) *jen.Statement {
	var s *jen.Statement
	if t.PkgPath == "" {
		s = jen.Id(t.Name)
	} else {
		s = jen.Qual(t.PkgPath, t.Name)
	}
	if t.Generic() {
		args := make([]jen.Code, len(t.Args))
		for i, a := range t.Args {
			args[i] = typeCode(a)
		}
		s = s.Types(args...)
	}
	return s
}
