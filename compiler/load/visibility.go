package load

import (
	"fmt"
	"go/token"
	"strings"
)

// Visibility is the declared visibility of a resource group. It propagates to
// every generated field, alias and extractor.
type Visibility uint8

const (
	// Public groups are exported from a non-internal package.
	Public Visibility = iota
	// Restricted groups are exported from an internal package and are visible
	// only within the enclosing module subtree.
	Restricted
	// Private groups are unexported.
	Private
)

var visibilityNames = [...]string{
	Public:     "public",
	Restricted: "restricted",
	Private:    "private",
}

// String implements the fmt.Stringer interface.
func (v Visibility) String() string {
	if int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return fmt.Sprintf("Visibility(%d)", v)
}

// Exported reports whether declarations of this visibility use exported
// identifiers.
func (v Visibility) Exported() bool { return v != Private }

// MarshalText implements encoding.TextMarshaler.
func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Visibility) UnmarshalText(b []byte) error {
	p, err := ParseVisibility(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// ParseVisibility parses a visibility name. The empty string is Public.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "public":
		return Public, nil
	case "restricted", "internal":
		return Restricted, nil
	case "private":
		return Private, nil
	default:
		return 0, fmt.Errorf("unknown visibility %q; use public, restricted or private", s)
	}
}

// visibilityOf derives the visibility of a declaration named name in the
// package at pkgPath.
func visibilityOf(name, pkgPath string) Visibility {
	switch {
	case !token.IsExported(name):
		return Private
	case internalPath(pkgPath):
		return Restricted
	default:
		return Public
	}
}

func internalPath(p string) bool {
	return p == "internal" ||
		strings.HasPrefix(p, "internal/") ||
		strings.HasSuffix(p, "/internal") ||
		strings.Contains(p, "/internal/")
}

// MemberSource selects which name the extractor reads from the container.
type MemberSource uint8

const (
	// MemberByName reads the container member named like the field.
	MemberByName MemberSource = iota
	// MemberByType reads the container member named like the field's
	// resource type, e.g. field `dp PA12` reads `p.PA12`.
	MemberByType
)

// String implements the fmt.Stringer interface.
func (m MemberSource) String() string {
	if m == MemberByType {
		return "type"
	}
	return "name"
}

// MarshalText implements encoding.TextMarshaler.
func (m MemberSource) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MemberSource) UnmarshalText(b []byte) error {
	p, err := ParseMemberSource(string(b))
	if err != nil {
		return err
	}
	*m = p
	return nil
}

// ParseMemberSource parses "name" or "type". The empty string is MemberByName.
func ParseMemberSource(s string) (MemberSource, error) {
	switch s {
	case "", "name":
		return MemberByName, nil
	case "type":
		return MemberByType, nil
	default:
		return 0, fmt.Errorf("unknown member source %q; use name or type", s)
	}
}
