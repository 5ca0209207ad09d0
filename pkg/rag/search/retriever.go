package search

import (
	"context"
	"fmt"

	"resumegpt-be/internal/apperror"
	"resumegpt-be/internal/repository/unitofwork"
	"resumegpt-be/pkg/embedding"
	"resumegpt-be/pkg/rag"

	"github.com/google/uuid"
)

// Retriever is the pgvector-backed FragmentStore, scoped to a single
// uploaded resume. It embeds the query and ranks stored fragments by
// cosine distance.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	uowFactory        unitofwork.RepositoryFactory
	resumeId          uuid.UUID
}

var _ rag.FragmentStore = &Retriever{}

func NewRetriever(
	embeddingProvider embedding.EmbeddingProvider,
	uowFactory unitofwork.RepositoryFactory,
	resumeId uuid.UUID,
) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		resumeId:          resumeId,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]rag.Fragment, error) {
	res, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, &apperror.StoreUnavailableError{Err: err}
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.ResumeFragmentRepository().SearchSimilar(ctx, res.Embedding.Values, k, r.resumeId)
	if err != nil {
		return nil, &apperror.StoreUnavailableError{Err: err}
	}

	fragments := make([]rag.Fragment, len(rows))
	for i, row := range rows {
		fragments[i] = rag.Fragment{
			Text:     row.Document,
			SourceID: fmt.Sprintf("%s#%d", row.ResumeId, row.ChunkIndex),
		}
	}
	return fragments, nil
}
