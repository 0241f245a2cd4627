package treeio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// ReadFile loads the compilation unit stored at path.
func ReadFile(path string) (*tree.CompilationUnit, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree document: %w", err)
	}

	doc, err := codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cu, err := DecodeUnit(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cu, nil
}

// WriteFile stores cu at path in the format chosen by its extension.
func WriteFile(path string, cu *tree.CompilationUnit) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}

	doc, err := Encode(cu)
	if err != nil {
		return err
	}

	data, err := codec.Marshal(doc)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), dirPerm)
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	err = os.WriteFile(path, data, filePerm)
	if err != nil {
		return fmt.Errorf("write tree document: %w", err)
	}

	return nil
}

// SourcePathFor strips the document extensions from path:
// "Foo.java.json.lz4" becomes "Foo.java".
func SourcePathFor(path string) string {
	for {
		ext := filepath.Ext(path)

		switch ext {
		case extJSON, extYAML, extYML, extMsgpack, extLZ4:
			path = path[:len(path)-len(ext)]
		default:
			return path
		}
	}
}
