package rewrite

import "sync"

// ExecutionContext carries messages across every pass of one run. It is safe
// for concurrent use.
type ExecutionContext struct {
	mu       sync.Mutex
	messages map[string]any
}

// NewExecutionContext returns an empty context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{messages: make(map[string]any)}
}

// PutMessage stores value under key.
func (ec *ExecutionContext) PutMessage(key string, value any) {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	ec.messages[key] = value
}

// Message returns the value stored under key.
func (ec *ExecutionContext) Message(key string) (any, bool) {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	value, ok := ec.messages[key]

	return value, ok
}

// ComputeMessage returns the value under key, storing compute() first when
// the key is absent.
func (ec *ExecutionContext) ComputeMessage(key string, compute func() any) any {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	if value, ok := ec.messages[key]; ok {
		return value
	}

	value := compute()
	ec.messages[key] = value

	return value
}
