package condition

// Func is a custom condition evaluator. Implementations must be pure
// reads over the views; they run inside the decide phase where the
// session snapshot is shared across goroutines.
type Func func(params map[string]any, ctx *Context) bool

// registry maps custom evaluator ids to functions. Populated during
// process startup via Register and read-only afterwards, so evaluation
// needs no locking.
var registry = map[string]Func{}

// Register installs a custom evaluator. Call only during startup,
// before any simulation tick runs. Registering an id twice replaces
// the earlier function.
func Register(id string, fn Func) {
	if id == "" || fn == nil {
		return
	}
	registry[id] = fn
}

func lookup(id string) (Func, bool) {
	fn, ok := registry[id]
	return fn, ok
}
