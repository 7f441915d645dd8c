package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWalkthrough(t *testing.T, log *[]string, sink func(blocked, unmet string)) *Pipeline {
	t.Helper()

	record := func(name string) func() {
		return func() { *log = append(*log, name) }
	}

	p, err := NewBuilder("walkthrough").
		AddTask("a", record("a")).
		AddTask("b", record("b")).
		AddTask("c", record("c")).
		AddTask("d", record("d")).
		AddDependency("c", "a").
		AddDependency("c", "b").
		AddDependency("d", "c").
		InvocationOrder("a", "c", "d").
		WithSink(sink).
		Build()
	require.NoError(t, err)
	return p
}

// TestPipeline_Run_Walkthrough exercises the canonical scenario: b is
// never invoked, so c and d block and report their missing dependencies.
func TestPipeline_Run_Walkthrough(t *testing.T) {
	var log []string
	var diags [][2]string
	p := buildWalkthrough(t, &log, func(blocked, unmet string) {
		diags = append(diags, [2]string{blocked, unmet})
	})

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, log)
	assert.Equal(t, []string{"a", "c", "d"}, report.Invoked)
	assert.Equal(t, []string{"a"}, report.Executed)
	assert.Equal(t, []string{"c", "d"}, report.Blocked)

	require.Len(t, diags, 2)
	assert.Equal(t, [2]string{"c", "b"}, diags[0])
	assert.Equal(t, [2]string{"d", "c"}, diags[1])
}

func TestPipeline_Run_DefaultOrderExecutesEverything(t *testing.T) {
	var log []string
	record := func(name string) func() {
		return func() { log = append(log, name) }
	}

	p, err := NewBuilder("full").
		AddTask("d", record("d")).
		AddTask("c", record("c")).
		AddTask("b", record("b")).
		AddTask("a", record("a")).
		AddDependency("c", "a").
		AddDependency("c", "b").
		AddDependency("d", "c").
		Build()
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.Executed, 4)
	assert.Empty(t, report.Blocked)
	assert.Equal(t, "d", log[len(log)-1])

	for _, name := range []string{"a", "b", "c", "d"} {
		task, _ := p.Task(name)
		assert.True(t, task.Satisfied(), "task %s should be satisfied", name)
	}
}

func TestPipeline_Run_SecondRunUnblocks(t *testing.T) {
	var log []string
	p := buildWalkthrough(t, &log, func(string, string) {})

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, log)

	// Invoke the missing prerequisite, then retry the blocked tasks.
	b, _ := p.Task("b")
	b.Invoke()

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Blocked)
	assert.Contains(t, log, "c")
	assert.Contains(t, log, "d")
}

func TestPipeline_Run_CancelledContext(t *testing.T) {
	var log []string
	p := buildWalkthrough(t, &log, func(string, string) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Invoked)
	assert.Empty(t, log)
}

func TestPipeline_Run_RepeatedInvocationCountedOnce(t *testing.T) {
	runs := 0
	p, err := NewBuilder("repeat").
		AddTask("a", func() { runs++ }).
		InvocationOrder("a", "a").
		Build()
	require.NoError(t, err)

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	// The action re-runs on the second invocation, but the task only
	// transitions to satisfied once.
	assert.Equal(t, 2, runs)
	assert.Equal(t, []string{"a", "a"}, report.Invoked)
	assert.Equal(t, []string{"a"}, report.Executed)
}

func TestPipeline_Accessors(t *testing.T) {
	var log []string
	p := buildWalkthrough(t, &log, func(string, string) {})

	assert.Equal(t, 4, p.Size())
	assert.Equal(t, []string{"a", "c", "d"}, p.InvocationSequence())
	assert.ElementsMatch(t, []string{"a", "b"}, p.Requires("c"))
	assert.Empty(t, p.Requires("a"))

	_, ok := p.Task("ghost")
	assert.False(t, ok)
}

func TestReport_Summary(t *testing.T) {
	r := &Report{
		RunID:    "run-1",
		Pipeline: "demo",
		Invoked:  []string{"a", "c"},
		Executed: []string{"a"},
		Blocked:  []string{"c"},
	}

	s := r.Summary()
	assert.Contains(t, s, `Pipeline "demo" run run-1`)
	assert.Contains(t, s, "Blocked tasks: c")
}
