package search

import (
	"strings"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/typeutil"
)

// References is the set of names in a unit's classes that an import can
// satisfy.
type References struct {
	// Types holds the FQNs that need a type import: the referenced class for
	// a simple name, the outermost class for an outer-qualified name.
	Types map[string]bool
	// Packages holds the packages of every type in Types.
	Packages map[string]bool
	// Statics maps an owner FQN to the member names referenced unqualified.
	Statics map[string]map[string]bool
}

// HasType reports whether fqcn needs a type import.
func (r *References) HasType(fqcn string) bool {
	return r.Types[fqcn]
}

// HasPackage reports whether any referenced type lives in pkg.
func (r *References) HasPackage(pkg string) bool {
	return r.Packages[pkg]
}

// HasStatic reports whether member of owner is referenced unqualified. A "*"
// member matches any member of owner.
func (r *References) HasStatic(owner, member string) bool {
	members := r.Statics[owner]
	if member == "*" {
		return len(members) > 0
	}

	return members[member]
}

// CollectReferences scans the classes of cu. Imports and the package clause
// are not references. Declared names and the selected name of a field access
// are skipped; identifiers spelled with their FQN need no import.
func CollectReferences(cu *tree.CompilationUnit) *References {
	refs := &References{
		Types:    make(map[string]bool),
		Packages: make(map[string]bool),
		Statics:  make(map[string]map[string]bool),
	}

	if cu == nil {
		return refs
	}

	skip := make(map[*tree.Identifier]bool)

	for _, class := range cu.Classes {
		tree.Walk(class, func(n tree.Node) bool {
			switch typed := n.(type) {
			case *tree.ClassDecl:
				skip[typed.Name] = true
			case *tree.MethodDecl:
				skip[typed.Name] = true
			case *tree.NamedVariable:
				skip[typed.Name] = true
			case *tree.FieldAccess:
				skip[typed.Name] = true
			case *tree.Identifier:
				if !skip[typed] {
					refs.addIdentifier(typed)
				}
			}

			return true
		})
	}

	return refs
}

func (r *References) addIdentifier(ident *tree.Identifier) {
	if ident.FieldType != nil {
		owner, ok := typeutil.AsClass(ident.FieldType.Owner)
		if !ok {
			return
		}

		members := r.Statics[owner.FQN]
		if members == nil {
			members = make(map[string]bool)
			r.Statics[owner.FQN] = members
		}

		members[ident.Name] = true

		return
	}

	class, ok := typeutil.AsClass(ident.Type)
	if !ok || ident.Name == class.FQN {
		return
	}

	// Variables typed with a class are not references to the class name.
	var fqcn string

	switch {
	case ident.Name == class.SimpleName():
		fqcn = class.FQN
	case strings.Contains(ident.Name, ".") && strings.HasSuffix(class.FQN, "."+ident.Name):
		fqcn = class.OutermostFQN()
	default:
		return
	}

	r.Types[fqcn] = true
	r.Packages[tree.BuildClass(fqcn).PackageName()] = true
}
