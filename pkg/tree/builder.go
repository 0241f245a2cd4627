package tree

// Constructors for synthesized nodes. Every constructor assigns a fresh id.

// NewIdentifier creates an identifier with a resolved type.
func NewIdentifier(prefix, name string, javaType JavaType) *Identifier {
	return &Identifier{
		Meta: Meta{ID: NewID(), Prefix: prefix},
		Name: name,
		Type: javaType,
	}
}

// NewFieldIdentifier creates an identifier that references a field declared
// by owner.
func NewFieldIdentifier(prefix, name string, owner, fieldType JavaType) *Identifier {
	return &Identifier{
		Meta:      Meta{ID: NewID(), Prefix: prefix},
		Name:      name,
		Type:      fieldType,
		FieldType: &Variable{Name: name, Owner: owner, Type: fieldType},
	}
}

// NewModifier creates a modifier keyword.
func NewModifier(prefix, keyword string) *Modifier {
	return &Modifier{
		Meta:    Meta{ID: NewID(), Prefix: prefix},
		Keyword: keyword,
	}
}

// NewModifiers creates a modifier list separated by single spaces; the first
// modifier carries prefix.
func NewModifiers(prefix string, keywords ...string) []*Modifier {
	modifiers := make([]*Modifier, 0, len(keywords))

	for idx, keyword := range keywords {
		space := " "
		if idx == 0 {
			space = prefix
		}

		modifiers = append(modifiers, NewModifier(space, keyword))
	}

	return modifiers
}

// NewAnnotation creates an argument-less annotation referenced by its simple
// name.
func NewAnnotation(prefix, fqn string) *Annotation {
	class := BuildClass(fqn)

	return &Annotation{
		Meta:           Meta{ID: NewID(), Prefix: prefix},
		AnnotationType: NewIdentifier("", class.SimpleName(), class),
		Type:           class,
	}
}

// NewImport creates an import statement.
func NewImport(prefix, qualid string, static bool) *Import {
	return &Import{
		Meta:   Meta{ID: NewID(), Prefix: prefix},
		Qualid: qualid,
		Static: static,
	}
}

// NewLiteral creates a literal.
func NewLiteral(prefix string, value any, source string, javaType JavaType) *Literal {
	return &Literal{
		Meta:   Meta{ID: NewID(), Prefix: prefix},
		Value:  value,
		Source: source,
		Type:   javaType,
	}
}

// NewAssign creates "variable = value" with single spaces around "=".
func NewAssign(prefix string, variable, value Expression) *Assign {
	return &Assign{
		Meta:       Meta{ID: NewID(), Prefix: prefix},
		Variable:   variable,
		OpPrefix:   " ",
		Assignment: WithPrefix(value, " "),
	}
}

// NewFieldAccess creates "target.name".
func NewFieldAccess(prefix string, target Expression, name *Identifier, javaType JavaType) *FieldAccess {
	return &FieldAccess{
		Meta:   Meta{ID: NewID(), Prefix: prefix},
		Target: target,
		Name:   name,
		Type:   javaType,
	}
}

// NewBlock creates a block.
func NewBlock(prefix string, statements []Statement, end string) *Block {
	return &Block{
		Meta:       Meta{ID: NewID(), Prefix: prefix},
		Statements: statements,
		End:        end,
	}
}
