package guard

import (
	"fmt"
	"io"
	"os"
)

// DiagnosticFunc receives the name of the blocked task and the name of
// the prerequisite that blocked it, once per unmet prerequisite per
// invocation.
type DiagnosticFunc func(blocked, unmet string)

// output backs the default sink. Overridable for tests and for hosts
// without a console; not synchronized, matching the package's
// single-threaded contract.
var output io.Writer = os.Stdout

// SetOutput redirects the default diagnostic sink to w. Tasks with a
// sink set via WithSink are unaffected.
func SetOutput(w io.Writer) {
	output = w
}

func defaultSink(blocked, unmet string) {
	fmt.Fprintf(output, "Dependency `%s` not met. Blocking `%s`\n", unmet, blocked)
}
