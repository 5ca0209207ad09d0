// Package rag defines the retrieval types shared by the conversation
// engine: document fragments and the store that ranks them per query.
package rag

import "context"

// Fragment is a contiguous piece of source-document text with an
// identifying source tag. Fragments are read-only; a conversation only
// references them for the duration of one turn.
type Fragment struct {
	Text     string `json:"text"`
	SourceID string `json:"source_id"`
}

// FragmentStore returns the k fragments most relevant to a query,
// best match first.
type FragmentStore interface {
	Retrieve(ctx context.Context, query string, k int) ([]Fragment, error)
}
