// Package tree provides the immutable syntax tree consumed and produced by the
// rewrite engine: a sealed set of node variants, resolved type references,
// formatting metadata and read-only traversal helpers.
package tree

import (
	"maps"

	"github.com/google/uuid"
)

// Kind identifies a node variant.
type Kind string

// Node variant constants.
const (
	KindCompilationUnit  Kind = "CompilationUnit"
	KindPackageDecl      Kind = "PackageDecl"
	KindImport           Kind = "Import"
	KindClassDecl        Kind = "ClassDecl"
	KindBlock            Kind = "Block"
	KindVariableDecls    Kind = "VariableDecls"
	KindNamedVariable    Kind = "NamedVariable"
	KindMethodDecl       Kind = "MethodDecl"
	KindAnnotation       Kind = "Annotation"
	KindIdentifier       Kind = "Identifier"
	KindFieldAccess      Kind = "FieldAccess"
	KindAssign           Kind = "Assign"
	KindModifier         Kind = "Modifier"
	KindLiteral          Kind = "Literal"
	KindMethodInvocation Kind = "MethodInvocation"
	KindReturn           Kind = "Return"
)

// Kinds lists every node variant in declaration order.
//
//nolint:gochecknoglobals // Fixed lookup table.
var Kinds = []Kind{
	KindCompilationUnit, KindPackageDecl, KindImport, KindClassDecl, KindBlock,
	KindVariableDecls, KindNamedVariable, KindMethodDecl, KindAnnotation,
	KindIdentifier, KindFieldAccess, KindAssign, KindModifier, KindLiteral,
	KindMethodInvocation, KindReturn,
}

// ID is an opaque, stable node identity.
type ID string

// NewID returns a fresh identity for a synthesized node.
func NewID() ID {
	return ID(uuid.NewString())
}

// Markers are arbitrary key/value annotations attached to a node by tooling.
// A Markers value is never mutated once attached; use [WithMarker].
type Markers map[string]string

// Meta holds the identity and formatting metadata shared by every node.
type Meta struct {
	// ID is the node identity. Parsed nodes keep their id across rewrites.
	ID ID
	// Prefix is the whitespace (and comments) printed before the node.
	Prefix string
	// Markers carries tool-specific metadata.
	Markers Markers
}

// Metadata returns the node metadata.
func (meta Meta) Metadata() Meta {
	return meta
}

// Node is implemented by every tree variant. The set of variants is closed:
// code that dispatches on nodes uses an exhaustive type switch.
type Node interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Metadata returns identity and formatting metadata.
	Metadata() Meta

	withMeta(meta Meta) Node
}

// Statement is a node that may appear in a block.
type Statement = Node

// Expression is a node that evaluates to a value or names a type.
type Expression = Node

// WithPrefix returns n with its prefix replaced. n itself is returned when the
// prefix is unchanged.
func WithPrefix[T Node](n T, prefix string) T {
	meta := n.Metadata()
	if meta.Prefix == prefix {
		return n
	}

	meta.Prefix = prefix

	return n.withMeta(meta).(T) //nolint:forcetypeassert // withMeta preserves the variant.
}

// WithID returns a copy of n carrying the given identity.
func WithID[T Node](n T, nodeID ID) T {
	meta := n.Metadata()
	if meta.ID == nodeID {
		return n
	}

	meta.ID = nodeID

	return n.withMeta(meta).(T) //nolint:forcetypeassert // withMeta preserves the variant.
}

// Fresh returns a shallow copy of n with a newly generated identity.
// Used when a node is duplicated into a second position of the tree.
func Fresh[T Node](n T) T {
	return WithID(n, NewID())
}

// WithMarker returns n with the marker key set to value.
func WithMarker[T Node](n T, key, value string) T {
	meta := n.Metadata()
	if current, ok := meta.Markers[key]; ok && current == value {
		return n
	}

	markers := make(Markers, len(meta.Markers)+1)
	maps.Copy(markers, meta.Markers)
	markers[key] = value
	meta.Markers = markers

	return n.withMeta(meta).(T) //nolint:forcetypeassert // withMeta preserves the variant.
}

// PrefixOf returns the prefix of n, or "" for a nil node.
func PrefixOf(n Node) string {
	if IsNil(n) {
		return ""
	}

	return n.Metadata().Prefix
}

// IsNil reports whether n is absent, including typed nil pointers.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}

	switch typed := n.(type) {
	case *CompilationUnit:
		return typed == nil
	case *PackageDecl:
		return typed == nil
	case *Import:
		return typed == nil
	case *ClassDecl:
		return typed == nil
	case *Block:
		return typed == nil
	case *VariableDecls:
		return typed == nil
	case *NamedVariable:
		return typed == nil
	case *MethodDecl:
		return typed == nil
	case *Annotation:
		return typed == nil
	case *Identifier:
		return typed == nil
	case *FieldAccess:
		return typed == nil
	case *Assign:
		return typed == nil
	case *Modifier:
		return typed == nil
	case *Literal:
		return typed == nil
	case *MethodInvocation:
		return typed == nil
	case *Return:
		return typed == nil
	default:
		return false
	}
}
