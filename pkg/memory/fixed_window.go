package memory

import "context"

// FixedWindow renders only the last N turns. Older turns are excluded
// from rendering but stay in the permanent log, so turn counts and
// summaries remain accurate.
type FixedWindow struct {
	size int
	log  []Turn
}

var _ Policy = &FixedWindow{}

func NewFixedWindow(size int) *FixedWindow {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return &FixedWindow{size: size}
}

func (w *FixedWindow) Name() string {
	return VariantWindow
}

func (w *FixedWindow) Render() string {
	turns := w.log
	if len(turns) > w.size {
		turns = turns[len(turns)-w.size:]
	}
	return renderTurns(turns)
}

func (w *FixedWindow) Append(_ context.Context, turn Turn) error {
	w.log = append(w.log, turn)
	return nil
}

func (w *FixedWindow) Clear() {
	w.log = nil
}

func (w *FixedWindow) Turns() []Turn {
	out := make([]Turn, len(w.log))
	copy(out, w.log)
	return out
}

func (w *FixedWindow) ApproxTokens() int {
	return estimateTurnTokens(w.log)
}
