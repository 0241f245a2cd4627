package tree

import "strings"

// FirstPrefix returns the whitespace printed before the first token of n,
// which may be spread across n and its leading children.
func FirstPrefix(n Node) string {
	if IsNil(n) {
		return ""
	}

	own := n.Metadata().Prefix

	switch typed := n.(type) {
	case *ClassDecl:
		switch {
		case len(typed.Annotations) > 0:
			return own + FirstPrefix(typed.Annotations[0])
		case len(typed.Modifiers) > 0:
			return own + FirstPrefix(typed.Modifiers[0])
		default:
			return own + typed.KeywordPrefix
		}
	case *Annotation, *Block, *Return, *Identifier, *Modifier, *Literal, *Import, *PackageDecl:
		return own
	}

	children := Children(n)
	if len(children) == 0 {
		return own
	}

	return own + FirstPrefix(children[0])
}

// Indentation returns the part of prefix after its last newline, or "" when
// the prefix does not start a new line.
func Indentation(prefix string) string {
	idx := strings.LastIndexByte(prefix, '\n')
	if idx < 0 {
		return ""
	}

	return prefix[idx+1:]
}

// FormatFirstPrefix returns a copy of list whose first element carries
// prefix. The input slice is not modified.
func FormatFirstPrefix[T Node](list []T, prefix string) []T {
	if len(list) == 0 {
		return list
	}

	out := make([]T, len(list))
	copy(out, list)
	out[0] = WithPrefix(out[0], prefix)

	return out
}

// FirstPrefixOf returns the prefix of the first element of list, or "".
func FirstPrefixOf[T Node](list []T) string {
	if len(list) == 0 {
		return ""
	}

	return FirstPrefix(list[0])
}

// Capitalize upper-cases the first byte of an ASCII identifier.
func Capitalize(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

// WithLeadingPrefix returns n with the whitespace before its first token
// replaced. For declarations the whitespace moves onto the first annotation,
// modifier or type; the declaration's own prefix is cleared.
func WithLeadingPrefix[T Node](n T, prefix string) T {
	var out Node

	switch typed := Node(n).(type) {
	case *VariableDecls:
		c := *typed
		c.Meta.Prefix = ""

		switch {
		case len(c.Annotations) > 0:
			c.Annotations = FormatFirstPrefix(c.Annotations, prefix)
		case len(c.Modifiers) > 0:
			c.Modifiers = FormatFirstPrefix(c.Modifiers, prefix)
		case !IsNil(c.TypeExpr):
			c.TypeExpr = WithPrefix(c.TypeExpr, prefix)
		default:
			c.Meta.Prefix = prefix
		}

		out = &c
	case *MethodDecl:
		c := *typed
		c.Meta.Prefix = ""

		switch {
		case len(c.Annotations) > 0:
			c.Annotations = FormatFirstPrefix(c.Annotations, prefix)
		case len(c.Modifiers) > 0:
			c.Modifiers = FormatFirstPrefix(c.Modifiers, prefix)
		case !IsNil(c.ReturnType):
			c.ReturnType = WithPrefix(c.ReturnType, prefix)
		case c.Name != nil:
			c.Name = WithPrefix(c.Name, prefix)
		default:
			c.Meta.Prefix = prefix
		}

		out = &c
	case *ClassDecl:
		c := *typed
		c.Meta.Prefix = ""

		switch {
		case len(c.Annotations) > 0:
			c.Annotations = FormatFirstPrefix(c.Annotations, prefix)
		case len(c.Modifiers) > 0:
			c.Modifiers = FormatFirstPrefix(c.Modifiers, prefix)
		default:
			c.KeywordPrefix = prefix
		}

		out = &c
	default:
		return WithPrefix(n, prefix)
	}

	return out.(T) //nolint:forcetypeassert // the switch preserves the variant.
}
