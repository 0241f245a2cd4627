// Package search answers read-only questions about a compilation unit:
// whether it mentions a type, which types and static members it references,
// and which language its source file is written in.
package search

import (
	"path"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/typeutil"
)

// LanguageJava is the enry name of the language the built-in recipes target.
const LanguageJava = "Java"

// Language detects the language of a source path from its file name.
// Returns "" when the path is empty or unknown.
func Language(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}

	return enry.GetLanguage(path.Base(sourcePath), nil)
}

// IsVendored reports whether the source path lies in a vendored or
// generated-dependency directory.
func IsVendored(sourcePath string) bool {
	return sourcePath != "" && enry.IsVendor(sourcePath)
}

// LanguageIs reports whether the unit's source file may be written in
// language. Only a path that enry positively names as another language is
// rejected; empty and unrecognized paths are accepted.
func LanguageIs(cu *tree.CompilationUnit, language string) bool {
	if cu == nil {
		return false
	}

	detected := Language(cu.SourcePath)

	return detected == "" || detected == language
}

// UsesType reports whether the unit imports fqcn (as a type, or as the owner
// of a static import) or refers to it through any resolved type attribute.
func UsesType(cu *tree.CompilationUnit, fqcn string) bool {
	if cu == nil || fqcn == "" {
		return false
	}

	for _, imp := range cu.Imports {
		if imp.TypeName() == fqcn {
			return true
		}
	}

	found := false

	tree.Walk(cu, func(n tree.Node) bool {
		if found {
			return false
		}

		if _, isImport := n.(*tree.Import); isImport {
			return false
		}

		if typeutil.IsOfType(typeutil.TypeOf(n), fqcn) {
			found = true

			return false
		}

		if ident, ok := n.(*tree.Identifier); ok && typeutil.FieldOwnerIs(ident.FieldType, fqcn) {
			found = true

			return false
		}

		return true
	})

	return found
}

// UsesAnyType reports whether UsesType holds for at least one of fqcns.
func UsesAnyType(cu *tree.CompilationUnit, fqcns ...string) bool {
	for _, fqcn := range fqcns {
		if UsesType(cu, fqcn) {
			return true
		}
	}

	return false
}
