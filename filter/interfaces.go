package filter

import (
	"context"
)

// Filter defines the basic interface for time entry filters
type Filter interface {
	// Evaluate checks if an entry matches the filter criteria
	Evaluate(entry Entry) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator evaluates filters against entries
type Evaluator interface {
	// Evaluate returns the entries matching filter, in input order
	Evaluate(ctx context.Context, filter CompiledFilter, entries []Entry) ([]Entry, error)
}

// WorkerPool defines the interface for concurrent work execution
type WorkerPool interface {
	// Submit submits work to the pool
	Submit(ctx context.Context, work func()) error

	// Stop gracefully stops the worker pool
	Stop(ctx context.Context) error
}
