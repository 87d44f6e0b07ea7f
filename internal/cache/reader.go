package cache

import (
	"context"

	"github.com/rptrainor/blog-cache-service/internal/store"
)

// Reader serves list and by-slug lookups straight from the store. Reads are
// pure: no write-through, no lazy population, no coalescing — concurrent
// identical reads may all hit the store, which is assumed cheap at the edge.
type Reader struct {
	store store.KeyValueStore
}

func NewReader(kv store.KeyValueStore) *Reader {
	return &Reader{store: kv}
}

// SummaryList returns the cached summary payload verbatim; it is already
// serialized in the wire shape. store.ErrNotFound means no refresh has ever
// completed.
func (r *Reader) SummaryList(ctx context.Context) ([]byte, error) {
	return r.store.Get(ctx, SummaryKey)
}

// ArticleBySlug returns the cached full record for the slug verbatim. A miss
// is terminal for the request; the reader never falls back to upstream.
func (r *Reader) ArticleBySlug(ctx context.Context, slug string) ([]byte, error) {
	return r.store.Get(ctx, ArticleKey(slug))
}
