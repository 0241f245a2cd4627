package treeio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions without a codec.
var ErrUnsupportedFormat = errors.New("unsupported tree document format")

const (
	extJSON    = ".json"
	extYAML    = ".yaml"
	extYML     = ".yml"
	extMsgpack = ".msgpack"
	extLZ4     = ".lz4"

	// structTag is shared by every codec so that one set of tags describes
	// the document layout.
	structTag = "json"
)

// Codec serializes documents.
type Codec interface {
	Name() string
	Marshal(doc *Document) ([]byte, error)
	Unmarshal(data []byte) (*Document, error)
}

// JSONCodec writes indented JSON.
type JSONCodec struct{}

// Name implements Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements Codec.
func (JSONCodec) Marshal(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}

	return append(data, '\n'), nil
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte) (*Document, error) {
	var doc Document

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal json: %w", err)
	}

	return &doc, nil
}

// YAMLCodec reads and writes YAML.
type YAMLCodec struct{}

// Name implements Codec.
func (YAMLCodec) Name() string { return "yaml" }

// Marshal implements Codec.
func (YAMLCodec) Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err := enc.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal implements Codec.
func (YAMLCodec) Unmarshal(data []byte) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	return &doc, nil
}

// MsgpackCodec reads and writes msgpack using the JSON field names.
type MsgpackCodec struct{}

// Name implements Codec.
func (MsgpackCodec) Name() string { return "msgpack" }

// Marshal implements Codec.
func (MsgpackCodec) Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	enc.SetOmitEmpty(true)

	err := enc.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal msgpack: %w", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal implements Codec.
func (MsgpackCodec) Unmarshal(data []byte) (*Document, error) {
	var doc Document

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)

	err := dec.Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("unmarshal msgpack: %w", err)
	}

	return &doc, nil
}

// LZ4Codec compresses the output of Inner into an LZ4 frame.
type LZ4Codec struct {
	Inner Codec
}

// Name implements Codec.
func (c LZ4Codec) Name() string { return c.Inner.Name() + "+lz4" }

// Marshal implements Codec.
func (c LZ4Codec) Marshal(doc *Document) ([]byte, error) {
	raw, err := c.Inner.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	writer := lz4.NewWriter(&buf)

	_, err = writer.Write(raw)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}

	return buf.Bytes(), nil
}

// Unmarshal implements Codec.
func (c LZ4Codec) Unmarshal(data []byte) (*Document, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}

	return c.Inner.Unmarshal(raw)
}

// CodecFor picks a codec from the file extension. A trailing ".lz4" wraps
// the codec of the remaining extension.
func CodecFor(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == extLZ4 {
		inner, err := CodecFor(strings.TrimSuffix(path, filepath.Ext(path)))
		if err != nil {
			return nil, err
		}

		return LZ4Codec{Inner: inner}, nil
	}

	switch ext {
	case extJSON:
		return JSONCodec{}, nil
	case extYAML, extYML:
		return YAMLCodec{}, nil
	case extMsgpack:
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}
