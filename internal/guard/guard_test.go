package guard

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink collects diagnostics as (blocked, unmet) pairs in emission order.
type captureSink struct {
	calls [][2]string
}

func (c *captureSink) fn(blocked, unmet string) {
	c.calls = append(c.calls, [2]string{blocked, unmet})
}

func TestNewTask_InitialState(t *testing.T) {
	task := New("build", func() {})

	assert.Equal(t, "build", task.Name())
	assert.False(t, task.Satisfied())
}

func TestNewTask_ConstructionDoesNotRunAction(t *testing.T) {
	ran := false
	New("build", func() { ran = true })

	assert.False(t, ran)
}

func TestInvoke_NoPrerequisites(t *testing.T) {
	runs := 0
	task := New("build", func() { runs++ })

	task.Invoke()

	assert.Equal(t, 1, runs)
	assert.True(t, task.Satisfied())
}

func TestInvoke_SingleUnmetPrerequisiteBlocks(t *testing.T) {
	sink := &captureSink{}
	ran := false
	b := New("b", func() {})
	c := New("c", func() { ran = true }, b).WithSink(sink.fn)

	c.Invoke()

	assert.False(t, ran)
	assert.False(t, c.Satisfied())
	require.Len(t, sink.calls, 1)
	assert.Equal(t, [2]string{"c", "b"}, sink.calls[0])
}

func TestInvoke_ReportsAllUnmetPrerequisitesInOrder(t *testing.T) {
	sink := &captureSink{}
	ran := false
	a := New("a", func() {})
	b := New("b", func() {})
	c := New("c", func() { ran = true }, a, b).WithSink(sink.fn)

	c.Invoke()

	assert.False(t, ran)
	assert.False(t, c.Satisfied())
	require.Len(t, sink.calls, 2)
	assert.Equal(t, [2]string{"c", "a"}, sink.calls[0])
	assert.Equal(t, [2]string{"c", "b"}, sink.calls[1])
}

func TestInvoke_AllPrerequisitesSatisfied(t *testing.T) {
	sink := &captureSink{}
	runs := 0
	a := New("a", func() {})
	b := New("b", func() {})
	c := New("c", func() { runs++ }, a, b).WithSink(sink.fn)

	a.Invoke()
	b.Invoke()
	c.Invoke()

	assert.Equal(t, 1, runs)
	assert.True(t, c.Satisfied())
	assert.Empty(t, sink.calls)
}

func TestInvoke_ChainedBlocking(t *testing.T) {
	sink := &captureSink{}
	ran := false
	c := New("c", func() {})
	d := New("d", func() { ran = true }, c).WithSink(sink.fn)

	d.Invoke()

	assert.False(t, ran)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, [2]string{"d", "c"}, sink.calls[0])
}

func TestInvoke_BlockedInvocationDoesNotResetSatisfied(t *testing.T) {
	gate := New("gate", func() {})
	task := New("task", func() {}, gate)

	gate.Invoke()
	task.Invoke()
	require.True(t, task.Satisfied())

	// A later dependent of "task" stays runnable even if "task" itself
	// can no longer re-run; the flag never reverts.
	blocked := New("blocked", func() {}, task)
	blocked.Invoke()
	assert.True(t, task.Satisfied())
	assert.True(t, blocked.Satisfied())
}

func TestInvoke_RepeatExecutionWhenSatisfied(t *testing.T) {
	runs := 0
	task := New("build", func() { runs++ })

	task.Invoke()
	task.Invoke()
	task.Invoke()

	assert.Equal(t, 3, runs)
	assert.True(t, task.Satisfied())
}

func TestInvoke_OneShotRunsAtMostOnce(t *testing.T) {
	runs := 0
	task := New("build", func() { runs++ }).OneShot()

	task.Invoke()
	task.Invoke()
	task.Invoke()

	assert.Equal(t, 1, runs)
	assert.True(t, task.Satisfied())
}

func TestInvoke_SharedPrerequisiteSingleSourceOfTruth(t *testing.T) {
	a := New("a", func() {})
	left := New("left", func() {}, a)
	right := New("right", func() {}, a)

	a.Invoke()
	left.Invoke()
	right.Invoke()

	assert.True(t, left.Satisfied())
	assert.True(t, right.Satisfied())
}

func TestDefaultSink_ReferenceFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	b := New("b", func() {})
	c := New("c", func() {}, b)
	c.Invoke()

	assert.Equal(t, "Dependency `b` not met. Blocking `c`\n", buf.String())
}

// TestWalkthrough reproduces the canonical four-task scenario: a runs,
// b is never invoked, so c blocks on b and d blocks on c.
func TestWalkthrough(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	var log []string
	a := New("a", func() { log = append(log, "a") })
	b := New("b", func() { log = append(log, "b") })
	c := New("c", func() { log = append(log, "c") }, a, b)
	d := New("d", func() { log = append(log, "d") }, c)

	a.Invoke()
	c.Invoke()
	d.Invoke()

	assert.Equal(t, []string{"a"}, log)
	assert.True(t, a.Satisfied())
	assert.False(t, b.Satisfied())
	assert.False(t, c.Satisfied())
	assert.False(t, d.Satisfied())

	want := "Dependency `b` not met. Blocking `c`\n" +
		"Dependency `c` not met. Blocking `d`\n"
	assert.Equal(t, want, buf.String())
}

func compileSources() {}

func TestNamed_InfersFunctionName(t *testing.T) {
	task := Named(compileSources)

	assert.Equal(t, "compileSources", task.Name())
}

func TestNamed_AnonymousFunctionGetsSyntheticName(t *testing.T) {
	task := Named(func() {})

	// Closures only carry synthetic symbols; the exact suffix depends on
	// how many literals precede this one in the package.
	assert.Regexp(t, `^func\d+`, task.Name())
}
