package tree

import (
	"crypto/sha1" //nolint:gosec // SHA1 used for content fingerprinting, not security.
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
)

// Equal reports whether a and b are semantically equal: same variants,
// same semantically relevant fields and equal children. Identity, prefixes
// and markers are ignored.
func Equal(a, b Node) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}

	if a == b {
		return true
	}

	return Fingerprint(a) == Fingerprint(b)
}

// Fingerprint returns a hex digest of the semantic content of n. Two nodes
// with equal fingerprints are semantically equal.
func Fingerprint(n Node) string {
	hasher := sha1.New() //nolint:gosec // SHA1 used for content fingerprinting, not security.

	writeNodeToHash(hasher, n)

	return hex.EncodeToString(hasher.Sum(nil))
}

func writeNodeToHash(hasher hash.Hash, n Node) {
	if IsNil(n) {
		writeField(hasher, "<nil>")

		return
	}

	writeField(hasher, string(n.Kind()))

	for _, field := range semanticFields(n) {
		writeField(hasher, field)
	}

	children := Children(n)
	writeField(hasher, strconv.Itoa(len(children)))

	for _, child := range children {
		writeNodeToHash(hasher, child)
	}
}

// semanticFields lists the non-child fields that take part in equality.
func semanticFields(n Node) []string {
	switch typed := n.(type) {
	case *CompilationUnit:
		return []string{typed.SourcePath}
	case *PackageDecl:
		return []string{typed.Name}
	case *Import:
		return []string{typed.Qualid, strconv.FormatBool(typed.Static)}
	case *ClassDecl:
		return []string{typed.Keyword, describe(typed.Type)}
	case *Block:
		return nil
	case *VariableDecls:
		return nil
	case *NamedVariable:
		return []string{describe(typed.Type)}
	case *MethodDecl:
		return []string{strconv.FormatBool(typed.Constructor), strconv.FormatBool(typed.Body == nil)}
	case *Annotation:
		return []string{describe(typed.Type), strconv.FormatBool(typed.Args == nil)}
	case *Identifier:
		fieldType := ""
		if !IsUnresolved(typed.FieldType) {
			fieldType = typed.FieldType.Describe()
		}

		return []string{typed.Name, describe(typed.Type), fieldType}
	case *FieldAccess:
		return []string{describe(typed.Type)}
	case *Assign:
		return []string{describe(typed.Type)}
	case *Modifier:
		return []string{typed.Keyword}
	case *Literal:
		return []string{fmt.Sprint(typed.Value), typed.Source, describe(typed.Type)}
	case *MethodInvocation:
		return []string{describe(typed.Type)}
	case *Return:
		return nil
	default:
		return nil
	}
}

func describe(javaType JavaType) string {
	if IsUnresolved(javaType) {
		return ""
	}

	return javaType.Describe()
}

func writeField(hasher hash.Hash, value string) {
	hasher.Write([]byte(strconv.Itoa(len(value))))
	hasher.Write([]byte{':'})
	hasher.Write([]byte(value))
}
