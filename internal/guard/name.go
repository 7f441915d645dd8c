package guard

import (
	"reflect"
	"runtime"
	"strings"
)

// inferName resolves the action's function symbol and strips the package
// path, so "github.com/acme/build.Fetch" becomes "Fetch". Method values
// carry a "-fm" suffix which is trimmed as well. Anonymous closures only
// have synthetic symbols (func1, func2, ...); those are returned as-is
// since nothing better is available at runtime.
func inferName(action func()) string {
	fn := runtime.FuncForPC(reflect.ValueOf(action).Pointer())
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
