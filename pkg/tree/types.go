package tree

import (
	"strings"
	"unicode"
)

// JavaType is a resolved type reference. A nil JavaType means resolution
// failed; every predicate over types treats nil as "no match".
type JavaType interface {
	// Describe returns a human-readable rendering of the type.
	Describe() string

	isJavaType()
}

// Class is a nominal class type. Equality is by FQN; TypeParameters are
// informational only.
type Class struct {
	FQN            string
	TypeParameters []JavaType
}

// Variable is a resolved field: its name, the type declaring it and the
// field's own type.
type Variable struct {
	Name  string
	Owner JavaType
	Type  JavaType
	Flags []string
}

// Primitive is a keyword type such as "int" or "boolean".
type Primitive string

// Primitive types used by literals.
const (
	PrimitiveBoolean Primitive = "boolean"
	PrimitiveInt     Primitive = "int"
	PrimitiveString  Primitive = "String"
	PrimitiveNull    Primitive = "null"
)

func (*Class) isJavaType()    {}
func (*Variable) isJavaType() {}
func (Primitive) isJavaType() {}

// BuildClass returns a class type for a fully-qualified name.
func BuildClass(fqn string) *Class {
	return &Class{FQN: fqn}
}

// Describe implements JavaType.
func (c *Class) Describe() string {
	if len(c.TypeParameters) == 0 {
		return c.FQN
	}

	params := make([]string, 0, len(c.TypeParameters))

	for _, param := range c.TypeParameters {
		if IsUnresolved(param) {
			params = append(params, "?")

			continue
		}

		params = append(params, param.Describe())
	}

	return c.FQN + "<" + strings.Join(params, ", ") + ">"
}

// PackageName returns the package portion of the FQN: every segment before
// the first one that starts with an upper-case letter.
func (c *Class) PackageName() string {
	pkg, _ := c.split()

	return pkg
}

// ClassName returns the FQN without its package, keeping outer classes:
// "ErrorProperties.IncludeStacktrace".
func (c *Class) ClassName() string {
	_, className := c.split()

	return className
}

// SimpleName returns the last segment of the FQN.
func (c *Class) SimpleName() string {
	_, last := splitLast(c.FQN)

	return last
}

// OutermostFQN returns the FQN of the top-level class enclosing c; this is
// the name a type import must use when c is referenced by its outer-qualified
// name.
func (c *Class) OutermostFQN() string {
	pkg, className := c.split()

	outer, _, _ := strings.Cut(className, ".")
	if pkg == "" {
		return outer
	}

	return pkg + "." + outer
}

func (c *Class) split() (pkg, className string) {
	segments := strings.Split(c.FQN, ".")

	for idx, segment := range segments {
		if segment != "" && unicode.IsUpper([]rune(segment)[0]) {
			return strings.Join(segments[:idx], "."), strings.Join(segments[idx:], ".")
		}
	}

	// No upper-case segment: treat the last segment as the class.
	return splitLast(c.FQN)
}

// Describe implements JavaType.
func (v *Variable) Describe() string {
	owner := "?"
	if !IsUnresolved(v.Owner) {
		owner = v.Owner.Describe()
	}

	return owner + "#" + v.Name
}

// HasFlag reports whether the variable carries the flag (e.g. "static").
func (v *Variable) HasFlag(flag string) bool {
	for _, candidate := range v.Flags {
		if candidate == flag {
			return true
		}
	}

	return false
}

// Describe implements JavaType.
func (p Primitive) Describe() string {
	return string(p)
}

// IsUnresolved reports whether javaType is absent, including typed nil
// pointers.
func IsUnresolved(javaType JavaType) bool {
	switch typed := javaType.(type) {
	case nil:
		return true
	case *Class:
		return typed == nil || typed.FQN == ""
	case *Variable:
		return typed == nil
	case Primitive:
		return typed == ""
	default:
		return false
	}
}
