package rewrite

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// Sentinel errors for rewrite runs.
var (
	// ErrInvariantViolation reports a tree that breaks a structural rule the
	// engine or a recipe relies on. The run is aborted.
	ErrInvariantViolation = errors.New("structural invariant violation")
	// ErrRecipePanic reports a visitor that panicked.
	ErrRecipePanic = errors.New("recipe panicked")
	// ErrChainTooDeep reports follow-up recipes nested beyond the chain limit.
	ErrChainTooDeep = errors.New("recipe chain too deep")
)

// InvariantError locates a structural invariant violation.
type InvariantError struct {
	Recipe string
	NodeID tree.ID
	Kind   tree.Kind
	Detail string
}

// Invariant returns an [InvariantError] for the offending node. The recipe
// name is filled in by the engine.
func Invariant(n tree.Node, format string, args ...any) *InvariantError {
	err := &InvariantError{Detail: fmt.Sprintf(format, args...)}

	if !tree.IsNil(n) {
		err.NodeID = n.Metadata().ID
		err.Kind = n.Kind()
	}

	return err
}

func (e *InvariantError) Error() string {
	msg := ErrInvariantViolation.Error()
	if e.Recipe != "" {
		msg += " in " + e.Recipe
	}

	if e.Kind != "" {
		msg += fmt.Sprintf(" at %s %s", e.Kind, e.NodeID)
	}

	return msg + ": " + e.Detail
}

// Unwrap makes errors.Is(err, ErrInvariantViolation) hold.
func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
