// Package imports edits the import list of a compilation unit. Additions
// keep each group (type imports, static imports) in lexical order; removals
// are guarded by a reference scan of the unit's classes.
package imports

import (
	"slices"

	"github.com/Sumatoshi-tech/codemod/pkg/search"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

const implicitPackage = "java.lang"

// Spec names an import. Member is empty for type imports; for static
// imports it is the member name or "*".
type Spec struct {
	Type   string
	Member string
	Static bool
}

// Qualid returns the import as written after "import" / "import static".
func (s Spec) Qualid() string {
	if s.Static {
		return s.Type + "." + s.Member
	}

	return s.Type
}

// Add returns cu with spec imported. The unit is returned unchanged when the
// import is already covered (exactly or by a wildcard), when the type lives in
// java.lang or in the unit's own package, and, with onlyIfReferenced, when
// nothing in the unit refers to it.
func Add(cu *tree.CompilationUnit, spec Spec, onlyIfReferenced bool) *tree.CompilationUnit {
	if cu == nil || spec.Type == "" || (spec.Static && spec.Member == "") {
		return cu
	}

	if covered(cu, spec) {
		return cu
	}

	if onlyIfReferenced {
		refs := search.CollectReferences(cu)

		if spec.Static && !refs.HasStatic(spec.Type, spec.Member) {
			return cu
		}

		if !spec.Static && !refs.HasType(spec.Type) {
			return cu
		}
	}

	return insert(cu, spec)
}

func covered(cu *tree.CompilationUnit, spec Spec) bool {
	class := tree.BuildClass(spec.Type)

	if !spec.Static {
		pkg := class.PackageName()
		if pkg == implicitPackage && class.ClassName() == class.SimpleName() {
			return true
		}

		if cu.Package != nil && pkg == cu.Package.Name {
			return true
		}
	}

	for _, imp := range cu.Imports {
		if imp.Static != spec.Static {
			continue
		}

		if imp.Qualid == spec.Qualid() {
			return true
		}

		if !imp.IsWildcard() {
			continue
		}

		if spec.Static && imp.TypeName() == spec.Type {
			return true
		}

		// A package wildcard covers top-level types only.
		if !spec.Static && imp.PackageName() == class.PackageName() && class.ClassName() == class.SimpleName() {
			return true
		}
	}

	return false
}

func insert(cu *tree.CompilationUnit, spec Spec) *tree.CompilationUnit {
	qualid := spec.Qualid()
	out := *cu

	if len(cu.Imports) == 0 {
		prefix := ""
		if cu.Package != nil {
			prefix = "\n\n"
		}

		out.Imports = []*tree.Import{tree.NewImport(prefix, qualid, spec.Static)}

		if cu.Package == nil && len(cu.Classes) > 0 && tree.FirstPrefix(cu.Classes[0]) == "" {
			out.Classes = slices.Clone(cu.Classes)
			out.Classes[0] = tree.WithLeadingPrefix(cu.Classes[0], "\n\n")
		}

		return &out
	}

	idx, groupStart := insertionPoint(cu.Imports, qualid, spec.Static)
	imports := make([]*tree.Import, 0, len(cu.Imports)+1)
	imports = append(imports, cu.Imports[:idx]...)

	switch {
	case idx < len(cu.Imports):
		// The new import takes over the position, and prefix, of the import it
		// displaces.
		displaced := cu.Imports[idx]
		separator := "\n"

		if groupStart && displaced.Static != spec.Static {
			separator = "\n\n"
		}

		imports = append(imports,
			tree.NewImport(displaced.Prefix, qualid, spec.Static),
			tree.WithPrefix(displaced, separator))
		imports = append(imports, cu.Imports[idx+1:]...)
	case groupStart:
		imports = append(imports, tree.NewImport("\n\n", qualid, spec.Static))
	default:
		imports = append(imports, tree.NewImport("\n", qualid, spec.Static))
	}

	out.Imports = imports

	return &out
}

// insertionPoint returns the index at which qualid keeps its group sorted and
// whether the import opens a group that does not exist yet. Type imports
// precede static imports.
func insertionPoint(imports []*tree.Import, qualid string, static bool) (idx int, groupStart bool) {
	last := -1

	for pos, imp := range imports {
		if imp.Static != static {
			continue
		}

		if imp.Qualid > qualid {
			return pos, false
		}

		last = pos
	}

	if last >= 0 {
		return last + 1, false
	}

	if static {
		return len(imports), true
	}

	for pos, imp := range imports {
		if imp.Static {
			return pos, true
		}
	}

	return len(imports), true
}

// Remove returns cu without the imports matching spec. With ifUnused an
// import is kept while the unit still refers to what it imports; a package
// wildcard is removed only when no type of that package is referenced.
func Remove(cu *tree.CompilationUnit, spec Spec, ifUnused bool) *tree.CompilationUnit {
	if cu == nil || len(cu.Imports) == 0 || spec.Type == "" {
		return cu
	}

	var refs *search.References
	if ifUnused {
		refs = search.CollectReferences(cu)
	}

	kept := make([]*tree.Import, 0, len(cu.Imports))
	carried := ""
	carry := false
	removed := false

	for _, imp := range cu.Imports {
		if matches(imp, spec) && !inUse(imp, refs) {
			removed = true

			if len(kept) == 0 && !carry {
				carried = imp.Prefix
				carry = true
			}

			continue
		}

		if carry {
			imp = tree.WithPrefix(imp, carried)
			carry = false
		}

		kept = append(kept, imp)
	}

	if !removed {
		return cu
	}

	out := *cu
	out.Imports = kept

	return &out
}

func matches(imp *tree.Import, spec Spec) bool {
	if imp.Static != spec.Static {
		return false
	}

	if spec.Static {
		if imp.TypeName() != spec.Type {
			return false
		}

		return imp.Member() == spec.Member || imp.Member() == "*"
	}

	if imp.Qualid == spec.Type {
		return true
	}

	return imp.IsWildcard() && imp.PackageName() == tree.BuildClass(spec.Type).PackageName()
}

func inUse(imp *tree.Import, refs *search.References) bool {
	if refs == nil {
		return false
	}

	if imp.Static {
		return refs.HasStatic(imp.TypeName(), imp.Member())
	}

	if imp.IsWildcard() {
		return refs.HasPackage(imp.PackageName())
	}

	return refs.HasType(imp.Qualid)
}
