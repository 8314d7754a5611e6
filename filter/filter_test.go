package filter

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/togglr/toggl"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testEntry() Entry {
	stop := testNow.Add(-22 * time.Hour)
	return Entry{
		TimeEntry: &toggl.TimeEntry{
			ID:          1,
			WorkspaceID: 42,
			ProjectID:   toggl.Int64(3),
			Billable:    true,
			Start:       testNow.Add(-24 * time.Hour),
			Stop:        &stop,
			Duration:    7200,
			Description: "Sprint planning",
			Tags:        []string{"Meeting", "q1"},
		},
		Project:   "Website",
		Client:    "Acme",
		Workspace: "Team",
	}
}

func generateEntries(count int) []Entry {
	entries := make([]Entry, count)
	for i := range count {
		entries[i] = Entry{
			TimeEntry: &toggl.TimeEntry{
				ID:          int64(i),
				Start:       testNow.Add(-time.Duration(i) * time.Hour),
				Duration:    int64((i % 5) * 1800),
				Billable:    i%2 == 0,
				Description: fmt.Sprintf("Task %d", i),
				Tags:        []string{"dev", "ops", "meeting"}[:(i%3)+1],
			},
			Project: []string{"Website", "Backend"}[i%2],
		}
	}
	return entries
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid expression", expression: `hasTag("meeting")`},
		{name: "empty expression", expression: "  ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `hasTag("unclosed`, wantErr: true},
		{name: "unknown variable", expression: `Projekt == "x"`, wantErr: true},
		{name: "not boolean", expression: `Hours + 1`, wantErr: true},
		{name: "complex expression", expression: `hasTag("q1") and Hours >= 2 and Start > daysAgo(7)`},
		{name: "shorthand", expression: `tag:"q1" AND project!:"Internal"`},
		{name: "shorthand bare values", expression: `project:Website and billable:true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := CompileFilter(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	entry := testEntry()
	running := testEntry()
	running.Stop = nil
	running.Duration = -1
	running.Start = testNow.Add(-30 * time.Minute)

	tests := []struct {
		name       string
		expression string
		entry      Entry
		expected   bool
	}{
		{"has tag case insensitive", `hasTag("meeting")`, entry, true},
		{"missing tag", `hasTag("travel")`, entry, false},
		{"project name", `Project == "Website"`, entry, true},
		{"client name", `Client == "Acme" and Workspace == "Team"`, entry, true},
		{"hours", `Hours == 2`, entry, true},
		{"seconds", `Seconds > 3600`, entry, true},
		{"billable", `Billable`, entry, true},
		{"description contains", `contains(Description, "PLANNING")`, entry, true},
		{"date comparison", `Start > daysAgo(2) and Start < hoursAgo(12)`, entry, true},
		{"started before", `startedBefore(parseDate("2024-03-15"))`, entry, true},
		{"days since", `daysSince(Start) == 1`, entry, true},
		{"longer than", `longerThan("90m")`, entry, true},
		{"shorter than", `shorterThan("90m")`, entry, false},
		{"has project", `hasProject() and ProjectID == 3`, entry, true},
		{"running", `Running and Hours < 1`, running, true},
		{"stopped entry is not running", `Running`, entry, false},
		{"running has zero stop", `Stop.IsZero()`, running, true},
		{"shorthand tag", `tag:"q1"`, entry, true},
		{"shorthand negated", `tag!:"q1"`, entry, false},
		{"shorthand project and client", `project:"website" AND client:"acme"`, entry, true},
		{"shorthand billable", `billable:false`, entry, false},
		{"shorthand durations", `longer:"1h" AND shorter:"3h"`, entry, true},
		{"shorthand since", `since:"2024-03-14"`, entry, true},
		{"shorthand before", `before:"2024-03-14"`, entry, false},
		{"shorthand bare project", `project:Website and billable:true`, entry, true},
		{"shorthand bare negated tag", `tag!:travel AND client:acme`, entry, true},
		{"shorthand negated project", `project!:"Website"`, entry, false},
		{"shorthand negated client", `client!:Initech`, entry, true},
		{"shorthand bare since", `since:2024-03-14 and longer:90m`, entry, true},
		{"shorthand bare inside parens", `(project:Backend or tag:q1)`, entry, true},
	}

	compiler := NewExprCompiler(WithClock(fixedClock))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.Evaluate(tt.entry), tt.expression)
		})
	}
}

func TestEvaluateNilEntry(t *testing.T) {
	f, err := CompileFilter(`true`)
	require.NoError(t, err)
	assert.False(t, f.Evaluate(Entry{}))
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`hasTag("a")`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  hasTag("a")  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`hasTag("b")`)
	require.NoError(t, err)
	_, err = compiler.Compile(`hasTag("c")`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
	assert.Equal(t, 0, NewExprCompiler().Size())
}

func TestConcurrentEvaluation(t *testing.T) {
	entries := generateEntries(1000)

	f, err := NewExprCompiler(WithClock(fixedClock)).Compile(`hasTag("ops") and Billable`)
	require.NoError(t, err)

	evaluator := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(50))
	defer evaluator.Stop(context.Background())

	matches, err := evaluator.Evaluate(context.Background(), f, entries)
	require.NoError(t, err)

	expected := evaluateSequential(f, entries)
	require.Equal(t, len(expected), len(matches))
	for i := range expected {
		assert.Equal(t, expected[i].ID, matches[i].ID)
	}
}

func TestConcurrentEvaluationCancelled(t *testing.T) {
	f, err := CompileFilter(`true`)
	require.NoError(t, err)

	evaluator := NewConcurrentEvaluator(WithWorkers(2), WithBatchSize(10))
	defer evaluator.Stop(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = evaluator.Evaluate(ctx, f, generateEntries(100))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerPoolStopped(t *testing.T) {
	pool := NewWorkerPool(1)
	require.NoError(t, pool.Stop(context.Background()))
	assert.ErrorIs(t, pool.Submit(context.Background(), func() {}), ErrPoolStopped)
	assert.NoError(t, pool.Stop(context.Background()))
}

func TestManager(t *testing.T) {
	m := NewManager(WithCompiler(NewExprCompiler(WithClock(fixedClock))))
	defer m.Close(context.Background())

	require.NoError(t, m.RegisterFilters(map[string]string{
		"meetings": `hasTag("meeting")`,
		"billable": `Billable`,
	}))
	assert.Equal(t, []string{"billable", "meetings"}, m.ListFilters())

	err := m.RegisterFilters(map[string]string{"broken": `hasTag(`})
	require.Error(t, err)
	_, ok := m.GetFilter("broken")
	assert.False(t, ok)

	entries := generateEntries(30)
	named, err := m.Apply(context.Background(), "billable", entries)
	require.NoError(t, err)
	assert.Len(t, named, 15)

	inline, err := m.Apply(context.Background(), `Project == "Backend"`, entries)
	require.NoError(t, err)
	assert.Len(t, inline, 15)

	all, err := m.Apply(context.Background(), "", entries)
	require.NoError(t, err)
	assert.Len(t, all, 30)

	_, err = m.EvaluateFilter(context.Background(), "missing", entries)
	assert.ErrorIs(t, err, ErrUnknownFilter)

	results, err := m.EvaluateAll(context.Background(), entries)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Len(t, results["billable"], 15)
}

func TestNamesResolve(t *testing.T) {
	names := NewNames(
		[]*toggl.Workspace{{ID: 42, Name: "Team"}},
		[]*toggl.Project{{ID: 3, Name: "Website", ClientID: toggl.Int64(7)}, {ID: 4, Name: "Internal"}},
		[]*toggl.Client{{ID: 7, Name: "Acme"}},
	)

	entries := names.Resolve([]*toggl.TimeEntry{
		{ID: 1, WorkspaceID: 42, ProjectID: toggl.Int64(3)},
		nil,
		{ID: 2, WorkspaceID: 42, ProjectID: toggl.Int64(4)},
		{ID: 3, WorkspaceID: 99},
	})
	require.Len(t, entries, 3)

	assert.Equal(t, "Website", entries[0].Project)
	assert.Equal(t, "Acme", entries[0].Client)
	assert.Equal(t, "Team", entries[0].Workspace)
	assert.Equal(t, "Internal", entries[1].Project)
	assert.Empty(t, entries[1].Client)
	assert.Empty(t, entries[2].Workspace)
}

func TestApply(t *testing.T) {
	entries := generateEntries(10)

	out, err := Apply(context.Background(), "", entries)
	require.NoError(t, err)
	assert.Len(t, out, 10)

	out, err = Apply(context.Background(), `Project == "Website"`, entries)
	require.NoError(t, err)
	assert.Len(t, out, 5)

	_, err = Apply(context.Background(), `(`, entries)
	assert.Error(t, err)
}

func TestExpandShorthand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`tag:"q1"`, `hasTag("q1")`},
		{`tag!:"q1"`, `not (hasTag("q1"))`},
		{`running:true OR billable:false`, `Running == true or Billable == false`},
		{`NOT description:"lunch"`, `not contains(Description, "lunch")`},
		{`hasTag("x")`, `hasTag("x")`},
		{`project:Website and billable:true`, `lower(Project) == lower("Website") and Billable == true`},
		{`client!:Acme`, `not (lower(Client) == lower("Acme"))`},
		{`(tag:q1)`, `(hasTag("q1"))`},
		{`since:yesterday`, `Start >= parseDate("yesterday")`},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandShorthand(tt.in))
		})
	}
	assert.True(t, IsShorthand(`client:"Acme"`))
	assert.False(t, IsShorthand(`Client == "Acme"`))
}

func TestVariables(t *testing.T) {
	vars := Variables()
	assert.Contains(t, vars, "Hours")
	assert.Contains(t, vars, "hasTag")
	assert.IsIncreasing(t, vars)
}
