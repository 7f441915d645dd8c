// Package guard implements dependency-guarded tasks: a task wraps an
// action and only runs it once every declared prerequisite task has
// completed successfully. Unmet prerequisites are reported, not raised;
// a blocked task simply declines to run until re-invoked later.
package guard

// Prerequisite is the read-only view a task exposes to its dependents.
// Any value with a satisfaction flag and a display name can gate a task.
type Prerequisite interface {
	// Satisfied reports whether the prerequisite's action has completed
	// successfully at least once.
	Satisfied() bool

	// Name returns the display name used in diagnostics.
	Name() string
}

// Task binds an action to a display name and a fixed, ordered set of
// prerequisite tasks. The action runs only on invocations where every
// prerequisite is satisfied.
//
// Tasks are single-threaded: Invoke runs the action synchronously on the
// calling goroutine and no internal locking is performed. Prerequisites
// are held by reference, so two dependents gating on the same task
// observe a single satisfaction flag.
type Task struct {
	action    func()
	name      string
	prereqs   []Prerequisite
	sink      DiagnosticFunc
	oneShot   bool
	satisfied bool
}

// New creates a task from a display name, a zero-argument action and any
// number of already-built prerequisites. The prerequisite list is fixed
// for the lifetime of the task; its order determines the order in which
// unmet-dependency diagnostics are emitted.
//
// No validation is performed: the name may be empty or duplicated, and
// the prerequisite set may contain duplicates. Construction never runs
// the action.
func New(name string, action func(), prereqs ...Prerequisite) *Task {
	return &Task{
		action:  action,
		name:    name,
		prereqs: prereqs,
	}
}

// Named creates a task whose display name is inferred from the action's
// function symbol, so guard.Named(fetch) names itself "fetch". Anonymous
// closures have no useful symbol; use New with an explicit name instead.
func Named(action func(), prereqs ...Prerequisite) *Task {
	return New(inferName(action), action, prereqs...)
}

// Invoke checks every prerequisite in declaration order and runs the
// action only if all of them are satisfied. Each unmet prerequisite
// produces one diagnostic line; the check never short-circuits, so a
// single invocation reports every blocker at once.
//
// Invoke has no error return. A blocked invocation is a soft condition:
// the action does not run, the satisfaction flag is untouched, and the
// caller is expected to re-invoke after the missing prerequisites have
// run. Callers that need to distinguish "ran" from "blocked" compare
// Satisfied before and after.
//
// Invoking an already-satisfied task re-checks prerequisites and, if they
// still hold, re-runs the action. The satisfaction flag gates dependents,
// not repeats of the task itself; see OneShot for run-at-most-once
// semantics.
func (t *Task) Invoke() {
	allMet := true
	for _, req := range t.prereqs {
		if !req.Satisfied() {
			allMet = false
			t.report(req.Name())
		}
	}
	if !allMet {
		return
	}
	if t.oneShot && t.satisfied {
		return
	}
	t.action()
	t.satisfied = true
}

// Satisfied reports whether the action has completed successfully at
// least once. The flag is monotonic: it transitions false to true exactly
// once and never resets.
func (t *Task) Satisfied() bool {
	return t.satisfied
}

// Name returns the task's display name.
func (t *Task) Name() string {
	return t.name
}

// OneShot marks the task to run its action at most once: re-invoking a
// satisfied one-shot task is a no-op even when every prerequisite still
// holds. Returns the task for chaining at construction:
//
//	c := guard.New("c", cleanup, a, b).OneShot()
func (t *Task) OneShot() *Task {
	t.oneShot = true
	return t
}

// WithSink routes this task's unmet-dependency diagnostics to sink
// instead of the package default. Returns the task for chaining.
func (t *Task) WithSink(sink DiagnosticFunc) *Task {
	t.sink = sink
	return t
}

func (t *Task) report(unmet string) {
	if t.sink != nil {
		t.sink(t.name, unmet)
		return
	}
	defaultSink(t.name, unmet)
}
