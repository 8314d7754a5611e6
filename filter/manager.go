package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Manager keeps named filters, typically loaded from configuration
type Manager struct {
	compiler  Compiler
	evaluator *ConcurrentEvaluator
	filters   map[string]CompiledFilter
	mu        sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithEvaluator sets a custom evaluator
func WithEvaluator(evaluator *ConcurrentEvaluator) ManagerOption {
	return func(m *Manager) {
		m.evaluator = evaluator
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		filters: make(map[string]CompiledFilter),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.compiler == nil {
		m.compiler = NewExprCompiler(WithCache(100))
	}
	if m.evaluator == nil {
		m.evaluator = NewConcurrentEvaluator()
	}
	return m
}

// RegisterFilters compiles and registers filters by name. Nothing is
// registered unless every expression compiles.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))
	for name, expression := range filters {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()
	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.filters[name]
	return f, ok
}

// ListFilters returns the registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the filter registered under nameOrExpr, or compiles it as
// an expression when no such name exists.
func (m *Manager) Resolve(nameOrExpr string) (CompiledFilter, error) {
	if f, ok := m.GetFilter(nameOrExpr); ok {
		return f, nil
	}
	return m.compiler.Compile(nameOrExpr)
}

// Apply filters entries with a named filter or an inline expression
func (m *Manager) Apply(ctx context.Context, nameOrExpr string, entries []Entry) ([]Entry, error) {
	if nameOrExpr == "" {
		return entries, nil
	}
	f, err := m.Resolve(nameOrExpr)
	if err != nil {
		return nil, err
	}
	return m.evaluator.Evaluate(ctx, f, entries)
}

// EvaluateFilter evaluates a single registered filter
func (m *Manager) EvaluateFilter(ctx context.Context, name string, entries []Entry) ([]Entry, error) {
	f, ok := m.GetFilter(name)
	if !ok {
		return nil, fmt.Errorf("filter '%s': %w", name, ErrUnknownFilter)
	}
	return m.evaluator.Evaluate(ctx, f, entries)
}

// EvaluateAll evaluates every registered filter
func (m *Manager) EvaluateAll(ctx context.Context, entries []Entry) (map[string][]Entry, error) {
	m.mu.RLock()
	filters := maps.Clone(m.filters)
	m.mu.RUnlock()

	return m.evaluator.EvaluateBatch(ctx, filters, entries)
}

// Close gracefully shuts down the manager
func (m *Manager) Close(ctx context.Context) error {
	return m.evaluator.Stop(ctx)
}
