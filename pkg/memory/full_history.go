package memory

import "context"

// FullHistory keeps and renders every turn. Unbounded growth is the
// accepted tradeoff of this variant.
type FullHistory struct {
	log []Turn
}

var _ Policy = &FullHistory{}

func NewFullHistory() *FullHistory {
	return &FullHistory{}
}

func (h *FullHistory) Name() string {
	return VariantBuffer
}

func (h *FullHistory) Render() string {
	return renderTurns(h.log)
}

func (h *FullHistory) Append(_ context.Context, turn Turn) error {
	h.log = append(h.log, turn)
	return nil
}

func (h *FullHistory) Clear() {
	h.log = nil
}

func (h *FullHistory) Turns() []Turn {
	out := make([]Turn, len(h.log))
	copy(out, h.log)
	return out
}

func (h *FullHistory) ApproxTokens() int {
	return estimateTurnTokens(h.log)
}
