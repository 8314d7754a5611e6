package filter

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/togglr/toggl"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	now        func() time.Time
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithClock sets the time source used by date helpers and running entries
func WithClock(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		if now != nil {
			c.now = now
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	cache *lruCache[CompiledFilter]
	now   func() time.Time
}

// Compile compiles an expression into an executable filter. Shorthand terms
// such as tag:"x" are expanded first.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	source := expression
	if IsShorthand(source) {
		source = ExpandShorthand(source)
	}

	// a typed sample environment lets the checker reject unknown names
	sample := Entry{TimeEntry: &toggl.TimeEntry{}}
	program, err := expr.Compile(source,
		expr.Env(runtimeEnvironment(sample, c.now)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{expression: expression, program: program, now: c.now}
	if c.cache != nil {
		c.cache.Put(expression, filter)
	}
	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate reports whether entry matches. Entries that fail evaluation do not match.
func (f *exprFilter) Evaluate(entry Entry) bool {
	ok, err := f.Match(entry)
	return err == nil && ok
}

// Match evaluates the filter and reports evaluation failures
func (f *exprFilter) Match(entry Entry) (bool, error) {
	if entry.TimeEntry == nil {
		return false, nil
	}
	result, err := expr.Run(f.program, runtimeEnvironment(entry, f.now))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, EntryID: entry.ID, Err: err}
	}
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// CompileFilter compiles expression with a fresh, uncached compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}

// Apply compiles expression and returns the matching entries. An empty
// expression matches everything.
func Apply(ctx context.Context, expression string, entries []Entry) ([]Entry, error) {
	if strings.TrimSpace(expression) == "" {
		return entries, nil
	}
	f, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}
	ev := NewConcurrentEvaluator()
	defer ev.Stop(context.WithoutCancel(ctx))
	return ev.Evaluate(ctx, f, entries)
}

func staticHelpers(now func() time.Time, env map[string]any) {
	// Date helpers
	env["now"] = now
	env["daysSince"] = func(t time.Time) int {
		return int(now().Sub(t).Hours() / 24)
	}
	env["hoursAgo"] = func(hours int) time.Time {
		return now().Add(-time.Duration(hours) * time.Hour)
	}
	env["daysAgo"] = func(days int) time.Time {
		return now().AddDate(0, 0, -days)
	}
	env["weeksAgo"] = func(weeks int) time.Time {
		return now().AddDate(0, 0, -7*weeks)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return now().AddDate(0, -months, 0)
	}
	env["parseDate"] = func(s string) time.Time {
		t, _ := ParseWhen(s, now())
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// runtimeEnvironment exposes one entry and the helpers to an expression
func runtimeEnvironment(e Entry, now func() time.Time) map[string]any {
	env := make(map[string]any, 48)
	staticHelpers(now, env)

	elapsed := e.Elapsed(now())
	var stop time.Time
	if e.Stop != nil {
		stop = *e.Stop
	}

	env["Entry"] = e
	env["ID"] = e.ID
	env["Description"] = e.Description
	env["Project"] = e.Project
	env["Client"] = e.Client
	env["Workspace"] = e.Workspace
	env["WorkspaceID"] = e.WorkspaceID
	env["ProjectID"] = deref(e.ProjectID)
	env["Tags"] = e.Tags
	env["Billable"] = e.Billable
	env["Running"] = e.IsRunning()
	env["Start"] = e.Start
	env["Stop"] = stop
	env["Seconds"] = int64(elapsed / time.Second)
	env["Hours"] = elapsed.Hours()

	env["hasTag"] = hasTagFunc(e.Tags)
	env["hasProject"] = func() bool { return e.ProjectID != nil }
	env["longerThan"] = func(d string) bool {
		limit, err := time.ParseDuration(d)
		return err == nil && elapsed > limit
	}
	env["shorterThan"] = func(d string) bool {
		limit, err := time.ParseDuration(d)
		return err == nil && elapsed < limit
	}
	env["startedAfter"] = func(t time.Time) bool { return e.Start.After(t) }
	env["startedBefore"] = func(t time.Time) bool { return e.Start.Before(t) }

	return env
}

func hasTagFunc(tags []string) func(string) bool {
	lower := make([]string, len(tags))
	for i, tag := range tags {
		lower[i] = strings.ToLower(tag)
	}
	return func(tag string) bool {
		return slices.Contains(lower, strings.ToLower(tag))
	}
}

// Variables lists the names an expression may use, for help output
func Variables() []string {
	env := runtimeEnvironment(Entry{TimeEntry: &toggl.TimeEntry{}}, time.Now)
	return slices.Sorted(maps.Keys(env))
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
