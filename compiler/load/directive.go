package load

import (
	"strings"
)

// Directive prefixes recognized in comments.
const (
	// GroupDirective marks a struct type as a resource group.
	GroupDirective = "//resgen:group"
	// AliasDirective names a custom alias for a field.
	AliasDirective = "//resgen:alias"
	// BuildTag guards definition files so the hand-written declarations do
	// not collide with the generated ones.
	BuildTag = "resgen"
)

// Mode tokens accepted by the group directive.
const (
	ModeDefault   = "default"
	ModeNoAliases = "no_aliases"
)

// groupArgs returns the arguments of a group directive line and whether the
// line is a group directive at all.
func groupArgs(line string) ([]string, bool) {
	rest, ok := strings.CutPrefix(line, GroupDirective)
	if !ok {
		return nil, false
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false
	}
	return strings.Fields(rest), true
}

// applyGroupArgs applies the mode token and key=value options of a group
// directive to g.
func applyGroupArgs(g *Group, args []string) error {
	g.GenerateAliases = true
	mode := ""
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if mode != "" {
				return invalid(g, "", g.Pos, "unexpected token %q after mode %q", arg, mode)
			}
			mode = arg
			if err := applyMode(g, mode); err != nil {
				return err
			}
			continue
		}
		if err := applyOption(g, key, value); err != nil {
			return err
		}
	}
	return nil
}

func applyMode(g *Group, mode string) error {
	switch mode {
	case "", ModeDefault:
		g.GenerateAliases = true
	case ModeNoAliases:
		g.GenerateAliases = false
	default:
		return invalid(g, "", g.Pos, "unrecognized mode %q; expected %q", mode, ModeNoAliases)
	}
	return nil
}

func applyOption(g *Group, key, value string) error {
	if value == "" {
		return invalid(g, "", g.Pos, "option %q has no value", key)
	}
	switch key {
	case "container":
		t, err := ParseTypeExpr(value, g.Imports)
		if err != nil {
			return invalid(g, "", g.Pos, "container: %v", err)
		}
		g.Container = t
	case "scope":
		t, err := ParseTypeExpr(value, g.Imports)
		if err != nil {
			return invalid(g, "", g.Pos, "scope: %v", err)
		}
		g.Scope = t
	case "members":
		m, err := ParseMemberSource(value)
		if err != nil {
			return invalid(g, "", g.Pos, "members: %v", err)
		}
		g.Members = m
	default:
		return invalid(g, "", g.Pos, "unknown option %q", key)
	}
	return nil
}
