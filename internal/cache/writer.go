package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rptrainor/blog-cache-service/internal/store"
	"github.com/rptrainor/blog-cache-service/pkg/models"
)

// Writer transforms an article set into the store key layout and performs the
// bulk write: N per-slug full records plus the one summary value.
type Writer struct {
	store store.KeyValueStore
}

func NewWriter(kv store.KeyValueStore) *Writer {
	return &Writer{store: kv}
}

// WriteReport describes a fully successful bulk write.
type WriteReport struct {
	Articles     int
	BytesWritten int64
}

// PartialWriteResult records how far a failed fan-out got. The store has no
// multi-key transaction, so a failure can leave some slugs written and the
// summary not, or vice versa; these counts make that state observable instead
// of pretending the write was all-or-nothing.
type PartialWriteResult struct {
	ArticlesWritten int
	SummaryWritten  bool
}

// WriteError is returned when any sub-write of the fan-out fails. Nothing is
// rolled back; Partial reports what did land.
type WriteError struct {
	Partial PartialWriteResult
	err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cache write failed (articles written: %d, summary written: %t): %v",
		e.Partial.ArticlesWritten, e.Partial.SummaryWritten, e.err)
}

func (e *WriteError) Unwrap() error { return e.err }

// Write serializes and stores every article under its slug key and the
// summary projection under SummaryKey. All N+1 puts are dispatched
// concurrently and joined; the write succeeds only if every put succeeds.
func (w *Writer) Write(ctx context.Context, set *models.ArticleSet) (WriteReport, error) {
	summaryBytes, err := json.Marshal(set.Summaries())
	if err != nil {
		return WriteReport{}, &WriteError{err: fmt.Errorf("marshal summary list: %w", err)}
	}

	payloads := make(map[string][]byte, len(set.Articles))
	var total int64
	for _, a := range set.Articles {
		b, err := json.Marshal(a)
		if err != nil {
			return WriteReport{}, &WriteError{err: fmt.Errorf("marshal article slug=%s: %w", a.Slug, err)}
		}
		payloads[ArticleKey(a.Slug)] = b
		total += int64(len(b))
	}
	total += int64(len(summaryBytes))

	var articlesWritten atomic.Int64
	var summaryWritten atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	for key, payload := range payloads {
		key, payload := key, payload
		g.Go(func() error {
			if err := w.store.Put(gctx, key, payload); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
			articlesWritten.Add(1)
			return nil
		})
	}
	g.Go(func() error {
		if err := w.store.Put(gctx, SummaryKey, summaryBytes); err != nil {
			return fmt.Errorf("put %s: %w", SummaryKey, err)
		}
		summaryWritten.Store(true)
		return nil
	})

	if err := g.Wait(); err != nil {
		return WriteReport{}, &WriteError{
			Partial: PartialWriteResult{
				ArticlesWritten: int(articlesWritten.Load()),
				SummaryWritten:  summaryWritten.Load(),
			},
			err: err,
		}
	}

	return WriteReport{Articles: len(set.Articles), BytesWritten: total}, nil
}
