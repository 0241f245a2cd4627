// Package treeio persists syntax trees as tagged documents. Documents are
// produced by an external parser and type resolver and consumed by the
// rewrite engine; they can be stored as JSON, YAML or msgpack, optionally
// LZ4-compressed.
package treeio

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// Document errors.
var (
	ErrUnknownKind     = errors.New("unknown node kind")
	ErrKindMismatch    = errors.New("unexpected node kind")
	ErrInvalidDocument = errors.New("invalid tree document")
)

// Type document kinds.
const (
	TypeClass     = "class"
	TypeVariable  = "variable"
	TypePrimitive = "primitive"
)

// Document is the flat representation of one node. Kind selects which of
// the remaining fields are meaningful.
type Document struct {
	Kind    string            `json:"kind"              yaml:"kind"`
	ID      string            `json:"id,omitempty"      yaml:"id,omitempty"`
	Prefix  string            `json:"prefix,omitempty"  yaml:"prefix,omitempty"`
	Markers map[string]string `json:"markers,omitempty" yaml:"markers,omitempty"`

	SourcePath    string `json:"sourcePath,omitempty"    yaml:"sourcePath,omitempty"`
	Name          string `json:"name,omitempty"          yaml:"name,omitempty"`
	Qualid        string `json:"qualid,omitempty"        yaml:"qualid,omitempty"`
	Static        bool   `json:"static,omitempty"        yaml:"static,omitempty"`
	Keyword       string `json:"keyword,omitempty"       yaml:"keyword,omitempty"`
	KeywordPrefix string `json:"keywordPrefix,omitempty" yaml:"keywordPrefix,omitempty"`
	OpPrefix      string `json:"opPrefix,omitempty"      yaml:"opPrefix,omitempty"`
	End           string `json:"end,omitempty"           yaml:"end,omitempty"`
	ParamsEnd     string `json:"paramsEnd,omitempty"     yaml:"paramsEnd,omitempty"`
	ArgsEnd       string `json:"argsEnd,omitempty"       yaml:"argsEnd,omitempty"`
	EOF           string `json:"eof,omitempty"           yaml:"eof,omitempty"`
	Source        string `json:"source,omitempty"        yaml:"source,omitempty"`
	Value         any    `json:"value,omitempty"         yaml:"value,omitempty"`
	Constructor   bool   `json:"constructor,omitempty"   yaml:"constructor,omitempty"`
	// Parens is set on annotations written with an argument list.
	Parens bool `json:"parens,omitempty" yaml:"parens,omitempty"`

	Package        *Document   `json:"package,omitempty"        yaml:"package,omitempty"`
	Imports        []*Document `json:"imports,omitempty"        yaml:"imports,omitempty"`
	Classes        []*Document `json:"classes,omitempty"        yaml:"classes,omitempty"`
	Annotations    []*Document `json:"annotations,omitempty"    yaml:"annotations,omitempty"`
	Modifiers      []*Document `json:"modifiers,omitempty"      yaml:"modifiers,omitempty"`
	Ident          *Document   `json:"ident,omitempty"          yaml:"ident,omitempty"`
	Body           *Document   `json:"body,omitempty"           yaml:"body,omitempty"`
	Statements     []*Document `json:"statements,omitempty"     yaml:"statements,omitempty"`
	TypeExpr       *Document   `json:"typeExpr,omitempty"       yaml:"typeExpr,omitempty"`
	Vars           []*Document `json:"vars,omitempty"           yaml:"vars,omitempty"`
	Initializer    *Document   `json:"initializer,omitempty"    yaml:"initializer,omitempty"`
	ReturnType     *Document   `json:"returnType,omitempty"     yaml:"returnType,omitempty"`
	Params         []*Document `json:"params,omitempty"         yaml:"params,omitempty"`
	AnnotationType *Document   `json:"annotationType,omitempty" yaml:"annotationType,omitempty"`
	Args           []*Document `json:"args,omitempty"           yaml:"args,omitempty"`
	Target         *Document   `json:"target,omitempty"         yaml:"target,omitempty"`
	Select         *Document   `json:"select,omitempty"         yaml:"select,omitempty"`
	Variable       *Document   `json:"variable,omitempty"       yaml:"variable,omitempty"`
	Assignment     *Document   `json:"assignment,omitempty"     yaml:"assignment,omitempty"`
	Expr           *Document   `json:"expr,omitempty"           yaml:"expr,omitempty"`

	Type      *TypeDocument `json:"type,omitempty"      yaml:"type,omitempty"`
	FieldType *TypeDocument `json:"fieldType,omitempty" yaml:"fieldType,omitempty"`
}

// TypeDocument is the representation of a resolved type.
type TypeDocument struct {
	Kind           string          `json:"kind"                     yaml:"kind"`
	FQN            string          `json:"fqn,omitempty"            yaml:"fqn,omitempty"`
	TypeParameters []*TypeDocument `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Name           string          `json:"name,omitempty"           yaml:"name,omitempty"`
	Owner          *TypeDocument   `json:"owner,omitempty"          yaml:"owner,omitempty"`
	Type           *TypeDocument   `json:"type,omitempty"           yaml:"type,omitempty"`
	Flags          []string        `json:"flags,omitempty"          yaml:"flags,omitempty"`
	Primitive      string          `json:"primitive,omitempty"      yaml:"primitive,omitempty"`
}

// Encode converts a node and its subtree into a document.
//
//nolint:cyclop,funlen,gocyclo // One case per node variant.
func Encode(n tree.Node) (*Document, error) {
	if tree.IsNil(n) {
		return nil, nil //nolint:nilnil // An absent child encodes as an absent document.
	}

	meta := n.Metadata()
	doc := &Document{
		Kind:    string(n.Kind()),
		ID:      string(meta.ID),
		Prefix:  meta.Prefix,
		Markers: meta.Markers,
	}

	var err error

	switch typed := n.(type) {
	case *tree.CompilationUnit:
		doc.SourcePath = typed.SourcePath
		doc.EOF = typed.EOF
		doc.Package, err = encodeChild(typed.Package, err)
		doc.Imports, err = encodeList(typed.Imports, err)
		doc.Classes, err = encodeList(typed.Classes, err)
	case *tree.PackageDecl:
		doc.Name = typed.Name
	case *tree.Import:
		doc.Qualid = typed.Qualid
		doc.Static = typed.Static
	case *tree.ClassDecl:
		doc.Keyword = typed.Keyword
		doc.KeywordPrefix = typed.KeywordPrefix
		doc.Type = EncodeType(typed.Type)
		doc.Annotations, err = encodeList(typed.Annotations, err)
		doc.Modifiers, err = encodeList(typed.Modifiers, err)
		doc.Ident, err = encodeChild(typed.Name, err)
		doc.Body, err = encodeChild(typed.Body, err)
	case *tree.Block:
		doc.End = typed.End
		doc.Statements, err = encodeList(typed.Statements, err)
	case *tree.VariableDecls:
		doc.Annotations, err = encodeList(typed.Annotations, err)
		doc.Modifiers, err = encodeList(typed.Modifiers, err)
		doc.TypeExpr, err = encodeChild(typed.TypeExpr, err)
		doc.Vars, err = encodeList(typed.Vars, err)
	case *tree.NamedVariable:
		doc.OpPrefix = typed.OpPrefix
		doc.Type = EncodeType(typed.Type)
		doc.Ident, err = encodeChild(typed.Name, err)
		doc.Initializer, err = encodeChild(typed.Initializer, err)
	case *tree.MethodDecl:
		doc.ParamsEnd = typed.ParamsEnd
		doc.Constructor = typed.Constructor
		doc.Annotations, err = encodeList(typed.Annotations, err)
		doc.Modifiers, err = encodeList(typed.Modifiers, err)
		doc.ReturnType, err = encodeChild(typed.ReturnType, err)
		doc.Ident, err = encodeChild(typed.Name, err)
		doc.Params, err = encodeList(typed.Params, err)
		doc.Body, err = encodeChild(typed.Body, err)
	case *tree.Annotation:
		doc.Parens = typed.Args != nil
		doc.Type = EncodeType(typed.Type)
		doc.AnnotationType, err = encodeChild(typed.AnnotationType, err)
		doc.Args, err = encodeList(typed.Args, err)
	case *tree.Identifier:
		doc.Name = typed.Name
		doc.Type = EncodeType(typed.Type)

		if typed.FieldType != nil {
			doc.FieldType = EncodeType(typed.FieldType)
		}
	case *tree.FieldAccess:
		doc.Type = EncodeType(typed.Type)
		doc.Target, err = encodeChild(typed.Target, err)
		doc.Ident, err = encodeChild(typed.Name, err)
	case *tree.Assign:
		doc.OpPrefix = typed.OpPrefix
		doc.Type = EncodeType(typed.Type)
		doc.Variable, err = encodeChild(typed.Variable, err)
		doc.Assignment, err = encodeChild(typed.Assignment, err)
	case *tree.Modifier:
		doc.Keyword = typed.Keyword
	case *tree.Literal:
		doc.Value = typed.Value
		doc.Source = typed.Source
		doc.Type = EncodeType(typed.Type)
	case *tree.MethodInvocation:
		doc.ArgsEnd = typed.ArgsEnd
		doc.Type = EncodeType(typed.Type)
		doc.Select, err = encodeChild(typed.Select, err)
		doc.Ident, err = encodeChild(typed.Name, err)
		doc.Args, err = encodeList(typed.Args, err)
	case *tree.Return:
		doc.Expr, err = encodeChild(typed.Expr, err)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, n)
	}

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// encodeChild encodes n unless an earlier sibling already failed.
func encodeChild[T tree.Node](n T, prev error) (*Document, error) {
	if prev != nil {
		return nil, prev
	}

	return Encode(n)
}

func encodeList[T tree.Node](list []T, prev error) ([]*Document, error) {
	if prev != nil || len(list) == 0 {
		return nil, prev
	}

	docs := make([]*Document, 0, len(list))

	for _, n := range list {
		doc, err := Encode(n)
		if err != nil {
			return nil, err
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// EncodeType converts a type reference; unresolved types encode as nil.
func EncodeType(javaType tree.JavaType) *TypeDocument {
	if tree.IsUnresolved(javaType) {
		return nil
	}

	switch typed := javaType.(type) {
	case *tree.Class:
		doc := &TypeDocument{Kind: TypeClass, FQN: typed.FQN}
		for _, param := range typed.TypeParameters {
			if encoded := EncodeType(param); encoded != nil {
				doc.TypeParameters = append(doc.TypeParameters, encoded)
			}
		}

		return doc
	case *tree.Variable:
		return &TypeDocument{
			Kind:  TypeVariable,
			Name:  typed.Name,
			Owner: EncodeType(typed.Owner),
			Type:  EncodeType(typed.Type),
			Flags: typed.Flags,
		}
	case tree.Primitive:
		return &TypeDocument{Kind: TypePrimitive, Primitive: string(typed)}
	default:
		return nil
	}
}
