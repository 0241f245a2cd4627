// Package typeutil provides nominal type-identity predicates over resolved
// type references. Every predicate is false for an unresolved reference.
package typeutil

import "github.com/Sumatoshi-tech/codemod/pkg/tree"

// AsClass returns the class type behind ref.
func AsClass(ref tree.JavaType) (*tree.Class, bool) {
	if tree.IsUnresolved(ref) {
		return nil, false
	}

	class, ok := ref.(*tree.Class)

	return class, ok
}

// IsOfClassType reports whether ref is a class type with the given FQN.
// Generic arguments are ignored.
func IsOfClassType(ref tree.JavaType, fqcn string) bool {
	class, ok := AsClass(ref)

	return ok && class.FQN == fqcn
}

// IsOfType reports whether ref denotes fqcn. Classes match by FQN, primitives
// by keyword and a field reference by its declared type. Nested type names
// are compared as written; "a.Outer$Inner" never matches "a.Outer.Inner".
func IsOfType(ref tree.JavaType, fqcn string) bool {
	if tree.IsUnresolved(ref) || fqcn == "" {
		return false
	}

	switch typed := ref.(type) {
	case *tree.Class:
		return typed.FQN == fqcn
	case tree.Primitive:
		return string(typed) == fqcn
	case *tree.Variable:
		return IsOfType(typed.Type, fqcn)
	default:
		return false
	}
}

// IsAnyOf reports whether ref denotes one of fqcns and returns the match.
func IsAnyOf(ref tree.JavaType, fqcns ...string) (string, bool) {
	for _, fqcn := range fqcns {
		if IsOfType(ref, fqcn) {
			return fqcn, true
		}
	}

	return "", false
}

// SameType reports whether a and b are the same nominal type.
func SameType(a, b tree.JavaType) bool {
	if tree.IsUnresolved(a) || tree.IsUnresolved(b) {
		return false
	}

	switch typed := a.(type) {
	case *tree.Class:
		return IsOfClassType(b, typed.FQN)
	case tree.Primitive:
		other, ok := b.(tree.Primitive)

		return ok && other == typed
	case *tree.Variable:
		other, ok := b.(*tree.Variable)

		return ok && other.Name == typed.Name && SameType(typed.Owner, other.Owner)
	default:
		return false
	}
}

// FieldOwnerIs reports whether the field reference is declared by fqcn.
func FieldOwnerIs(field *tree.Variable, fqcn string) bool {
	if field == nil {
		return false
	}

	return IsOfClassType(field.Owner, fqcn)
}

// TypeOf returns the resolved type attribute of an expression node, or nil.
func TypeOf(n tree.Node) tree.JavaType {
	switch typed := n.(type) {
	case *tree.Identifier:
		if typed == nil {
			return nil
		}

		return typed.Type
	case *tree.FieldAccess:
		if typed == nil {
			return nil
		}

		return typed.Type
	case *tree.MethodInvocation:
		if typed == nil {
			return nil
		}

		return typed.Type
	case *tree.Literal:
		if typed == nil {
			return nil
		}

		return typed.Type
	case *tree.Assign:
		if typed == nil {
			return nil
		}

		return typed.Type
	case *tree.Annotation:
		if typed == nil {
			return nil
		}

		return typed.Type
	case *tree.ClassDecl:
		if typed == nil {
			return nil
		}

		return typed.Type
	case *tree.NamedVariable:
		if typed == nil {
			return nil
		}

		return typed.Type
	default:
		return nil
	}
}
