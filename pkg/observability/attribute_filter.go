package observability

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Span attribute policy. Block rules win over allow rules; keys matching
// neither are dropped. Source text and diffs never leave the process.
//
//nolint:gochecknoglobals // Fixed lookup tables.
var (
	allowedPrefixes = []string{"codemod.", "batch.", "error", "recipe", "source", "changed", "applied"}
	blockedPrefixes = []string{"user.", "env."}
	blockedKeys     = map[string]bool{"email": true, "source.text": true, "diff": true}
)

func attributeAllowed(key string) bool {
	if blockedKeys[key] {
		return false
	}

	for _, prefix := range blockedPrefixes {
		if strings.HasPrefix(key, prefix) {
			return false
		}
	}

	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

// attributeFilter strips span attributes outside the policy before handing
// ended spans to its delegate.
type attributeFilter struct {
	delegate sdktrace.SpanProcessor
	logger   *slog.Logger
}

// NewAttributeFilter wraps delegate with the span attribute policy. A
// non-nil logger receives one warning per span that lost attributes.
func NewAttributeFilter(delegate sdktrace.SpanProcessor, logger *slog.Logger) sdktrace.SpanProcessor {
	return &attributeFilter{delegate: delegate, logger: logger}
}

func (f *attributeFilter) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	f.delegate.OnStart(parent, s)
}

func (f *attributeFilter) OnEnd(s sdktrace.ReadOnlySpan) {
	original := s.Attributes()
	kept := make([]attribute.KeyValue, 0, len(original))

	var dropped []string

	for _, kv := range original {
		if attributeAllowed(string(kv.Key)) {
			kept = append(kept, kv)
		} else {
			dropped = append(dropped, string(kv.Key))
		}
	}

	if len(dropped) > 0 && f.logger != nil {
		f.logger.Warn("span attributes blocked by filter", "span", s.Name(), "keys", dropped)
	}

	f.delegate.OnEnd(&filteredSpan{ReadOnlySpan: s, attributes: kept})
}

func (f *attributeFilter) Shutdown(ctx context.Context) error {
	err := f.delegate.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter shutdown: %w", err)
	}

	return nil
}

func (f *attributeFilter) ForceFlush(ctx context.Context) error {
	err := f.delegate.ForceFlush(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter flush: %w", err)
	}

	return nil
}

// filteredSpan is a read-only span whose attributes were already filtered.
type filteredSpan struct {
	sdktrace.ReadOnlySpan

	attributes []attribute.KeyValue
}

func (s *filteredSpan) Attributes() []attribute.KeyValue {
	return s.attributes
}
