package session

// action tags an undoable operator decision.
type action int

const (
	actionSkip action = iota
	actionWrite
)

// actionHistory is a LIFO record of skip and write decisions. One pop undoes
// exactly one decision, regardless of how skips and writes interleave.
type actionHistory struct {
	stack []action
}

func (h *actionHistory) Push(a action) {
	h.stack = append(h.stack, a)
}

func (h *actionHistory) Pop() (action, bool) {
	if len(h.stack) == 0 {
		return 0, false
	}
	last := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return last, true
}

func (h *actionHistory) Len() int { return len(h.stack) }
