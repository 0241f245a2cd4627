package tree

import "strings"

// CompilationUnit is the root of a parsed source file.
type CompilationUnit struct {
	Meta

	// SourcePath identifies the originating source file.
	SourcePath string
	Package    *PackageDecl
	Imports    []*Import
	Classes    []*ClassDecl
	// EOF is the trailing whitespace after the last class.
	EOF string
}

// PackageDecl is the package clause of a compilation unit.
type PackageDecl struct {
	Meta

	Name string
}

// Import is a single import statement. Qualid holds the imported name as
// written: "a.b.Type", "a.b.*", or for static imports "a.b.Type.MEMBER" and
// "a.b.Type.*".
type Import struct {
	Meta

	Qualid string
	Static bool
}

// ClassDecl declares a class, interface, enum or annotation type.
type ClassDecl struct {
	Meta

	Annotations []*Annotation
	Modifiers   []*Modifier
	// Keyword is "class", "interface", "enum" or "@interface".
	Keyword       string
	KeywordPrefix string
	Name          *Identifier
	Body          *Block
	Type          JavaType
}

// Block is a brace-delimited statement list. End is the whitespace printed
// before the closing brace.
type Block struct {
	Meta

	Statements []Statement
	End        string
}

// VariableDecls declares one or more variables of one type. It models
// fields, method parameters and local variables.
type VariableDecls struct {
	Meta

	Annotations []*Annotation
	Modifiers   []*Modifier
	TypeExpr    Expression
	Vars        []*NamedVariable
}

// NamedVariable is a single declarator inside [VariableDecls].
type NamedVariable struct {
	Meta

	Name *Identifier
	// OpPrefix is printed before "=" when Initializer is set.
	OpPrefix    string
	Initializer Expression
	Type        JavaType
}

// MethodDecl declares a method or, when Constructor is set, a constructor.
type MethodDecl struct {
	Meta

	Annotations []*Annotation
	Modifiers   []*Modifier
	// ReturnType is nil for constructors.
	ReturnType Expression
	Name       *Identifier
	// Params are normally *VariableDecls; anything else violates the grammar.
	Params []Statement
	// ParamsEnd is printed before ")".
	ParamsEnd   string
	Body        *Block
	Constructor bool
}

// Annotation is a "@Type" or "@Type(args)" annotation. Args is nil when the
// annotation has no parentheses.
type Annotation struct {
	Meta

	AnnotationType Expression
	Args           []Expression
	Type           JavaType
}

// Identifier is a simple name. FieldType is set when the identifier refers
// to a field; Type is the type of the expression.
type Identifier struct {
	Meta

	Name      string
	Type      JavaType
	FieldType *Variable
}

// FieldAccess is a member selection "target.name".
type FieldAccess struct {
	Meta

	Target Expression
	Name   *Identifier
	Type   JavaType
}

// Assign is "variable = assignment". It also models named annotation
// arguments.
type Assign struct {
	Meta

	Variable   Expression
	OpPrefix   string
	Assignment Expression
	Type       JavaType
}

// Modifier is a declaration keyword such as "private" or "final".
type Modifier struct {
	Meta

	Keyword string
}

// Literal is a constant value. Source is the literal as written.
type Literal struct {
	Meta

	Value  any
	Source string
	Type   JavaType
}

// MethodInvocation is "select.name(args)"; Select may be nil.
type MethodInvocation struct {
	Meta

	Select Expression
	Name   *Identifier
	Args   []Expression
	// ArgsEnd is printed before ")".
	ArgsEnd string
	Type    JavaType
}

// Return is a return statement; Expr may be nil.
type Return struct {
	Meta

	Expr Expression
}

// Kind implements Node.
func (*CompilationUnit) Kind() Kind { return KindCompilationUnit }

// Kind implements Node.
func (*PackageDecl) Kind() Kind { return KindPackageDecl }

// Kind implements Node.
func (*Import) Kind() Kind { return KindImport }

// Kind implements Node.
func (*ClassDecl) Kind() Kind { return KindClassDecl }

// Kind implements Node.
func (*Block) Kind() Kind { return KindBlock }

// Kind implements Node.
func (*VariableDecls) Kind() Kind { return KindVariableDecls }

// Kind implements Node.
func (*NamedVariable) Kind() Kind { return KindNamedVariable }

// Kind implements Node.
func (*MethodDecl) Kind() Kind { return KindMethodDecl }

// Kind implements Node.
func (*Annotation) Kind() Kind { return KindAnnotation }

// Kind implements Node.
func (*Identifier) Kind() Kind { return KindIdentifier }

// Kind implements Node.
func (*FieldAccess) Kind() Kind { return KindFieldAccess }

// Kind implements Node.
func (*Assign) Kind() Kind { return KindAssign }

// Kind implements Node.
func (*Modifier) Kind() Kind { return KindModifier }

// Kind implements Node.
func (*Literal) Kind() Kind { return KindLiteral }

// Kind implements Node.
func (*MethodInvocation) Kind() Kind { return KindMethodInvocation }

// Kind implements Node.
func (*Return) Kind() Kind { return KindReturn }

func (n *CompilationUnit) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *PackageDecl) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Import) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *ClassDecl) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Block) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *VariableDecls) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *NamedVariable) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *MethodDecl) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Annotation) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Identifier) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *FieldAccess) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Assign) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Modifier) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Literal) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *MethodInvocation) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

func (n *Return) withMeta(meta Meta) Node {
	c := *n
	c.Meta = meta

	return &c
}

// TypeName returns the imported type for a type import, or the owning type
// for a static import. For package wildcards it returns "".
func (n *Import) TypeName() string {
	if n.Static {
		owner, _ := splitLast(n.Qualid)

		return owner
	}

	if n.IsWildcard() {
		return ""
	}

	return n.Qualid
}

// PackageName returns the package of the imported name.
func (n *Import) PackageName() string {
	if !n.Static && n.IsWildcard() {
		pkg, _ := splitLast(n.Qualid)

		return pkg
	}

	return BuildClass(n.TypeName()).PackageName()
}

// Member returns the member name of a static import ("*" for wildcards),
// and "" for type imports.
func (n *Import) Member() string {
	if !n.Static {
		return ""
	}

	_, member := splitLast(n.Qualid)

	return member
}

// IsWildcard reports whether the import ends in ".*".
func (n *Import) IsWildcard() bool {
	return strings.HasSuffix(n.Qualid, ".*")
}

// WithStatements returns the block with its statements replaced.
func (n *Block) WithStatements(statements []Statement) *Block {
	c := *n
	c.Statements = statements

	return &c
}

// WithBody returns the class with its body replaced.
func (n *ClassDecl) WithBody(body *Block) *ClassDecl {
	if n.Body == body {
		return n
	}

	c := *n
	c.Body = body

	return &c
}

// WithAnnotations returns the class with its annotations replaced.
func (n *ClassDecl) WithAnnotations(annotations []*Annotation) *ClassDecl {
	c := *n
	c.Annotations = annotations

	return &c
}

// WithModifiers returns the class with its modifiers replaced.
func (n *ClassDecl) WithModifiers(modifiers []*Modifier) *ClassDecl {
	c := *n
	c.Modifiers = modifiers

	return &c
}

// SimpleName returns the declared name.
func (n *ClassDecl) SimpleName() string {
	if n.Name == nil {
		return ""
	}

	return n.Name.Name
}

// Fields returns the field declarations in body order.
func (n *ClassDecl) Fields() []*VariableDecls {
	if n.Body == nil {
		return nil
	}

	var fields []*VariableDecls

	for _, stmt := range n.Body.Statements {
		if field, ok := stmt.(*VariableDecls); ok {
			fields = append(fields, field)
		}
	}

	return fields
}

// Methods returns the method and constructor declarations in body order.
func (n *ClassDecl) Methods() []*MethodDecl {
	if n.Body == nil {
		return nil
	}

	var methods []*MethodDecl

	for _, stmt := range n.Body.Statements {
		if method, ok := stmt.(*MethodDecl); ok {
			methods = append(methods, method)
		}
	}

	return methods
}

// WithAnnotations returns the declaration with its annotations replaced.
func (n *VariableDecls) WithAnnotations(annotations []*Annotation) *VariableDecls {
	c := *n
	c.Annotations = annotations

	return &c
}

// WithModifiers returns the declaration with its modifiers replaced.
func (n *VariableDecls) WithModifiers(modifiers []*Modifier) *VariableDecls {
	c := *n
	c.Modifiers = modifiers

	return &c
}

// WithTypeExpr returns the declaration with its type expression replaced.
func (n *VariableDecls) WithTypeExpr(typeExpr Expression) *VariableDecls {
	c := *n
	c.TypeExpr = typeExpr

	return &c
}

// VarNames returns the declared variable names.
func (n *VariableDecls) VarNames() []string {
	names := make([]string, 0, len(n.Vars))

	for _, named := range n.Vars {
		if named != nil && named.Name != nil {
			names = append(names, named.Name.Name)
		}
	}

	return names
}

// HasModifier reports whether the declaration carries the keyword.
func (n *VariableDecls) HasModifier(keyword string) bool {
	return hasModifier(n.Modifiers, keyword)
}

// SimpleName returns the declared method name.
func (n *MethodDecl) SimpleName() string {
	if n.Name == nil {
		return ""
	}

	return n.Name.Name
}

// HasModifier reports whether the method carries the keyword.
func (n *MethodDecl) HasModifier(keyword string) bool {
	return hasModifier(n.Modifiers, keyword)
}

// WithAnnotationType returns the annotation with its type name replaced.
func (n *Annotation) WithAnnotationType(annotationType Expression) *Annotation {
	c := *n
	c.AnnotationType = annotationType

	return &c
}

// WithArgs returns the annotation with its arguments replaced.
func (n *Annotation) WithArgs(args []Expression) *Annotation {
	c := *n
	c.Args = args

	return &c
}

// WithType returns the annotation with its resolved type replaced.
func (n *Annotation) WithType(javaType JavaType) *Annotation {
	c := *n
	c.Type = javaType

	return &c
}

// SimpleName returns the last segment of the annotation type as written.
func (n *Annotation) SimpleName() string {
	switch typed := n.AnnotationType.(type) {
	case *Identifier:
		return typed.Name
	case *FieldAccess:
		if typed.Name != nil {
			return typed.Name.Name
		}
	}

	return ""
}

// WithName returns the identifier renamed.
func (n *Identifier) WithName(name string) *Identifier {
	if n.Name == name {
		return n
	}

	c := *n
	c.Name = name

	return &c
}

// WithFieldType returns the identifier with its field reference replaced.
func (n *Identifier) WithFieldType(fieldType *Variable) *Identifier {
	c := *n
	c.FieldType = fieldType

	return &c
}

// WithName returns the field access with its selected name replaced.
func (n *FieldAccess) WithName(name *Identifier) *FieldAccess {
	if n.Name == name {
		return n
	}

	c := *n
	c.Name = name

	return &c
}

// WithTarget returns the field access with its target replaced.
func (n *FieldAccess) WithTarget(target Expression) *FieldAccess {
	c := *n
	c.Target = target

	return &c
}

// SimpleName returns the selected member name.
func (n *FieldAccess) SimpleName() string {
	if n.Name == nil {
		return ""
	}

	return n.Name.Name
}

// QualifiedName flattens a chain of identifiers and field accesses into its
// dotted spelling. ok is false when the chain contains another variant.
func QualifiedName(expr Expression) (name string, ok bool) {
	switch typed := expr.(type) {
	case *Identifier:
		return typed.Name, true
	case *FieldAccess:
		target, targetOK := QualifiedName(typed.Target)
		if !targetOK || typed.Name == nil {
			return "", false
		}

		return target + "." + typed.Name.Name, true
	default:
		return "", false
	}
}

func hasModifier(modifiers []*Modifier, keyword string) bool {
	for _, modifier := range modifiers {
		if modifier.Keyword == keyword {
			return true
		}
	}

	return false
}

func splitLast(qualid string) (head, last string) {
	idx := strings.LastIndexByte(qualid, '.')
	if idx < 0 {
		return "", qualid
	}

	return qualid[:idx], qualid[idx+1:]
}
