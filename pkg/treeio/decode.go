package treeio

import (
	"fmt"
	"math"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// DecodeUnit decodes a document whose root is a compilation unit.
func DecodeUnit(doc *Document) (*tree.CompilationUnit, error) {
	n, err := Decode(doc)
	if err != nil {
		return nil, err
	}

	cu, ok := n.(*tree.CompilationUnit)
	if !ok {
		return nil, fmt.Errorf("%w: root is %s, want %s", ErrKindMismatch, doc.Kind, tree.KindCompilationUnit)
	}

	return cu, nil
}

// Decode converts a document back into a node. Nodes without an id get a
// fresh one.
//
//nolint:cyclop,funlen,gocyclo // One case per node variant.
func Decode(doc *Document) (tree.Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: missing node", ErrInvalidDocument)
	}

	meta := tree.Meta{ID: tree.ID(doc.ID), Prefix: doc.Prefix}
	if meta.ID == "" {
		meta.ID = tree.NewID()
	}

	if len(doc.Markers) > 0 {
		meta.Markers = tree.Markers(doc.Markers)
	}

	var (
		out tree.Node
		d   decoder
	)

	switch tree.Kind(doc.Kind) {
	case tree.KindCompilationUnit:
		out = &tree.CompilationUnit{
			Meta:       meta,
			SourcePath: doc.SourcePath,
			Package:    decodeOptional[*tree.PackageDecl](&d, doc.Package),
			Imports:    decodeList[*tree.Import](&d, doc.Imports),
			Classes:    decodeList[*tree.ClassDecl](&d, doc.Classes),
			EOF:        doc.EOF,
		}
	case tree.KindPackageDecl:
		out = &tree.PackageDecl{Meta: meta, Name: doc.Name}
	case tree.KindImport:
		out = &tree.Import{Meta: meta, Qualid: doc.Qualid, Static: doc.Static}
	case tree.KindClassDecl:
		out = &tree.ClassDecl{
			Meta:          meta,
			Annotations:   decodeList[*tree.Annotation](&d, doc.Annotations),
			Modifiers:     decodeList[*tree.Modifier](&d, doc.Modifiers),
			Keyword:       doc.Keyword,
			KeywordPrefix: doc.KeywordPrefix,
			Name:          decodeOptional[*tree.Identifier](&d, doc.Ident),
			Body:          decodeOptional[*tree.Block](&d, doc.Body),
			Type:          DecodeType(doc.Type),
		}
	case tree.KindBlock:
		out = &tree.Block{
			Meta:       meta,
			Statements: decodeList[tree.Statement](&d, doc.Statements),
			End:        doc.End,
		}
	case tree.KindVariableDecls:
		out = &tree.VariableDecls{
			Meta:        meta,
			Annotations: decodeList[*tree.Annotation](&d, doc.Annotations),
			Modifiers:   decodeList[*tree.Modifier](&d, doc.Modifiers),
			TypeExpr:    decodeOptional[tree.Expression](&d, doc.TypeExpr),
			Vars:        decodeList[*tree.NamedVariable](&d, doc.Vars),
		}
	case tree.KindNamedVariable:
		out = &tree.NamedVariable{
			Meta:        meta,
			Name:        decodeOptional[*tree.Identifier](&d, doc.Ident),
			OpPrefix:    doc.OpPrefix,
			Initializer: decodeOptional[tree.Expression](&d, doc.Initializer),
			Type:        DecodeType(doc.Type),
		}
	case tree.KindMethodDecl:
		out = &tree.MethodDecl{
			Meta:        meta,
			Annotations: decodeList[*tree.Annotation](&d, doc.Annotations),
			Modifiers:   decodeList[*tree.Modifier](&d, doc.Modifiers),
			ReturnType:  decodeOptional[tree.Expression](&d, doc.ReturnType),
			Name:        decodeOptional[*tree.Identifier](&d, doc.Ident),
			Params:      decodeList[tree.Statement](&d, doc.Params),
			ParamsEnd:   doc.ParamsEnd,
			Body:        decodeOptional[*tree.Block](&d, doc.Body),
			Constructor: doc.Constructor,
		}
	case tree.KindAnnotation:
		annotation := &tree.Annotation{
			Meta:           meta,
			AnnotationType: decodeOptional[tree.Expression](&d, doc.AnnotationType),
			Args:           decodeList[tree.Expression](&d, doc.Args),
			Type:           DecodeType(doc.Type),
		}

		if doc.Parens && annotation.Args == nil {
			annotation.Args = []tree.Expression{}
		}

		out = annotation
	case tree.KindIdentifier:
		ident := &tree.Identifier{Meta: meta, Name: doc.Name, Type: DecodeType(doc.Type)}
		if variable, ok := DecodeType(doc.FieldType).(*tree.Variable); ok {
			ident.FieldType = variable
		}

		out = ident
	case tree.KindFieldAccess:
		out = &tree.FieldAccess{
			Meta:   meta,
			Target: decodeOptional[tree.Expression](&d, doc.Target),
			Name:   decodeOptional[*tree.Identifier](&d, doc.Ident),
			Type:   DecodeType(doc.Type),
		}
	case tree.KindAssign:
		out = &tree.Assign{
			Meta:       meta,
			Variable:   decodeOptional[tree.Expression](&d, doc.Variable),
			OpPrefix:   doc.OpPrefix,
			Assignment: decodeOptional[tree.Expression](&d, doc.Assignment),
			Type:       DecodeType(doc.Type),
		}
	case tree.KindModifier:
		out = &tree.Modifier{Meta: meta, Keyword: doc.Keyword}
	case tree.KindLiteral:
		out = &tree.Literal{Meta: meta, Value: normalizeValue(doc.Value), Source: doc.Source, Type: DecodeType(doc.Type)}
	case tree.KindMethodInvocation:
		out = &tree.MethodInvocation{
			Meta:    meta,
			Select:  decodeOptional[tree.Expression](&d, doc.Select),
			Name:    decodeOptional[*tree.Identifier](&d, doc.Ident),
			Args:    decodeList[tree.Expression](&d, doc.Args),
			ArgsEnd: doc.ArgsEnd,
			Type:    DecodeType(doc.Type),
		}
	case tree.KindReturn:
		out = &tree.Return{Meta: meta, Expr: decodeOptional[tree.Expression](&d, doc.Expr)}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, doc.Kind)
	}

	if d.err != nil {
		return nil, d.err
	}

	return out, nil
}

// decoder keeps the first error met while decoding the children of a node.
type decoder struct {
	err error
}

func decodeOptional[T tree.Node](d *decoder, doc *Document) T {
	var zero T

	if d.err != nil || doc == nil {
		return zero
	}

	n, err := Decode(doc)
	if err != nil {
		d.err = err

		return zero
	}

	typed, ok := n.(T)
	if !ok {
		d.err = fmt.Errorf("%w: %s where %T expected", ErrKindMismatch, doc.Kind, zero)

		return zero
	}

	return typed
}

func decodeList[T tree.Node](d *decoder, docs []*Document) []T {
	if d.err != nil || len(docs) == 0 {
		return nil
	}

	out := make([]T, 0, len(docs))

	for _, doc := range docs {
		if doc == nil {
			d.err = fmt.Errorf("%w: null list element", ErrInvalidDocument)

			return nil
		}

		n := decodeOptional[T](d, doc)
		if d.err != nil {
			return nil
		}

		out = append(out, n)
	}

	return out
}

// DecodeType converts a type document; nil and unknown kinds decode as an
// unresolved type.
func DecodeType(doc *TypeDocument) tree.JavaType {
	if doc == nil {
		return nil
	}

	switch doc.Kind {
	case TypeClass:
		class := &tree.Class{FQN: doc.FQN}
		for _, param := range doc.TypeParameters {
			if decoded := DecodeType(param); decoded != nil {
				class.TypeParameters = append(class.TypeParameters, decoded)
			}
		}

		return class
	case TypeVariable:
		return &tree.Variable{
			Name:  doc.Name,
			Owner: DecodeType(doc.Owner),
			Type:  DecodeType(doc.Type),
			Flags: doc.Flags,
		}
	case TypePrimitive:
		return tree.Primitive(doc.Primitive)
	default:
		return nil
	}
}

// normalizeValue maps the numeric types produced by the various codecs back
// to int where the value is integral.
func normalizeValue(value any) any {
	switch typed := value.(type) {
	case float64:
		if typed == math.Trunc(typed) && math.Abs(typed) <= math.MaxInt32 {
			return int(typed)
		}

		return typed
	case float32:
		return normalizeValue(float64(typed))
	case int8:
		return int(typed)
	case int16:
		return int(typed)
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case uint8:
		return int(typed)
	case uint16:
		return int(typed)
	case uint32:
		return int(typed)
	case uint64:
		if typed <= math.MaxInt32 {
			return int(typed)
		}

		return typed
	default:
		return value
	}
}
