// Package tools exposes each SEMrush operation as a named callable tool.
// The transport layer hands over already-validated argument maps; this
// package decodes them into typed shapes and dispatches to the request
// client.
package tools

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/wooshiiltd/semrush-mcp/internal/metrics"
	"github.com/wooshiiltd/semrush-mcp/internal/semrush"
)

// Arguments is the raw argument map for one tool invocation.
type Arguments map[string]any

// Handler executes one tool against the request client.
type Handler func(ctx context.Context, args Arguments) (*semrush.ResponseEnvelope, error)

// Tool describes one callable operation.
type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// UnknownToolError reports an invocation of a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ArgumentError reports arguments that could not be decoded into the
// tool's expected shape.
type ArgumentError struct {
	Tool string
	Err  error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Registry holds the closed set of tools backed by one shared client.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry registers every tool against the given client.
func NewRegistry(client *semrush.Client) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, tool := range definitions(client) {
		r.tools[tool.Name] = tool
		r.order = append(r.order, tool.Name)
	}
	return r
}

// List returns the tools in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Execute runs the named tool and returns the raw payload on success.
// Failures surface as *semrush.APIError, *UnknownToolError, or
// *ArgumentError; nothing is swallowed.
func (r *Registry) Execute(ctx context.Context, name string, args Arguments) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}

	envelope, err := tool.Handler(ctx, args)
	metrics.RecordToolCall(name, err == nil)
	if err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// decodeArgs maps the raw arguments onto a typed struct. Numbers arriving
// as JSON float64 are coerced into the integer fields the operations
// expect.
func decodeArgs[T any](tool string, args Arguments) (T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return out, &ArgumentError{Tool: tool, Err: err}
	}
	if err := decoder.Decode(map[string]any(args)); err != nil {
		return out, &ArgumentError{Tool: tool, Err: err}
	}
	return out, nil
}
