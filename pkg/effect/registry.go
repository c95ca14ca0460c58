package effect

import "github.com/jwebster45206/npc-engine/pkg/state"

// Handler applies one custom effect during the apply phase. Handlers
// may mutate the NPC and session directly; they run single-threaded.
// Any entries they produce should be appended to the log.
type Handler func(params map[string]any, npc *state.NPCRuntimeState, sess *state.Session, log *Log)

// handlers maps custom effect types to handlers. Populated during
// process startup via RegisterHandler and read-only afterwards, same
// discipline as the condition registry.
var handlers = map[string]Handler{}

// RegisterHandler installs a custom effect handler. Call only during
// startup, before any simulation tick runs.
func RegisterHandler(effectType string, h Handler) {
	if effectType == "" || h == nil {
		return
	}
	handlers[effectType] = h
}

func lookupHandler(effectType string) (Handler, bool) {
	h, ok := handlers[effectType]
	return h, ok
}
