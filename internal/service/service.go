// Package service coordinates the refresh cycle and fronts the cached reads.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/rptrainor/blog-cache-service/internal/cache"
	"github.com/rptrainor/blog-cache-service/pkg/models"
)

// ArticleSource is the upstream capability the coordinator pulls from.
type ArticleSource interface {
	FetchArticleSet(ctx context.Context) (*models.ArticleSet, error)
}

// RefreshSummary reports the outcome of one successful refresh.
type RefreshSummary struct {
	ArticlesWritten int   `json:"articles_written"`
	BytesWritten    int64 `json:"bytes_written"`
}

// Service wires the refresh path (source -> writer) and the read path
// (reader -> store). Readers never talk to the source.
type Service struct {
	source ArticleSource
	writer *cache.Writer
	reader *cache.Reader
	logger *slog.Logger

	sf singleflight.Group
}

func NewService(source ArticleSource, writer *cache.Writer, reader *cache.Reader, logger *slog.Logger) *Service {
	return &Service{source: source, writer: writer, reader: reader, logger: logger}
}

// Refresh pulls the full article set from upstream and replaces both cached
// projections. Refresh is idempotent, so concurrent triggers coalesce onto
// one in-flight refresh and all callers receive its outcome.
func (s *Service) Refresh(ctx context.Context) (RefreshSummary, error) {
	v, err, shared := s.sf.Do("refresh", func() (any, error) {
		// Coalesced callers share one execution; detach it from the first
		// caller's cancellation so a dropped trigger cannot fail the rest.
		return s.doRefresh(context.WithoutCancel(ctx))
	})
	if shared {
		s.logger.Debug("refresh coalesced with an in-flight refresh")
	}
	if err != nil {
		return RefreshSummary{}, err
	}
	return v.(RefreshSummary), nil
}

func (s *Service) doRefresh(ctx context.Context) (RefreshSummary, error) {
	set, err := s.source.FetchArticleSet(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("refresh: %w", err)
	}

	// The store is the only state shared across invocations, so the previous
	// set size comes from the cached summary about to be overwritten.
	prevCount := s.cachedSummaryCount(ctx)

	report, err := s.writer.Write(ctx, set)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("refresh: %w", err)
	}

	// Stale per-slug records are not swept when the set shrinks; they stay
	// addressable until overwritten. Log so operators can see it happening.
	if prevCount > report.Articles {
		s.logger.Info("article set shrank; removed slugs remain cached",
			"previous", prevCount, "current", report.Articles)
	}

	s.logger.Info("refresh complete",
		"articles", report.Articles, "bytes", report.BytesWritten)
	return RefreshSummary{
		ArticlesWritten: report.Articles,
		BytesWritten:    report.BytesWritten,
	}, nil
}

// cachedSummaryCount reads the size of the currently cached summary list.
// Returns -1 when no list is cached or it cannot be read.
func (s *Service) cachedSummaryCount(ctx context.Context) int {
	raw, err := s.reader.SummaryList(ctx)
	if err != nil {
		return -1
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return -1
	}
	return len(entries)
}

// SummaryList serves the cached summary payload.
func (s *Service) SummaryList(ctx context.Context) ([]byte, error) {
	return s.reader.SummaryList(ctx)
}

// ArticleBySlug serves the cached full record for one slug.
func (s *Service) ArticleBySlug(ctx context.Context, slug string) ([]byte, error) {
	return s.reader.ArticleBySlug(ctx, slug)
}
