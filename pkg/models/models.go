package models

import (
	"fmt"
	"net/url"
)

// Article is the canonical record as delivered by the upstream content API.
// Optional fields are pointers so that JSON null survives a round trip.
type Article struct {
	ID             int64   `json:"id"`
	Slug           string  `json:"slug"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	Body           string  `json:"body"`
	AuthorFullName *string `json:"author_full_name"`
	CoverImgSrc    *string `json:"cover_img_src"`
	CoverImgAlt    *string `json:"cover_img_alt"`
	IsActive       bool    `json:"is_active"`
	PublishedDate  string  `json:"published_date"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// ArticleSummary is the list-view projection of an Article. Body, author,
// active flag and timestamps are omitted on purpose to keep the list payload
// small.
type ArticleSummary struct {
	ID            int64   `json:"id"`
	Slug          string  `json:"slug"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	CoverImgSrc   *string `json:"cover_img_src"`
	CoverImgAlt   *string `json:"cover_img_alt"`
	PublishedDate string  `json:"published_date"`
}

// ArticleSet is the full collection fetched from upstream in one call. A set
// always replaces the cached collection wholesale; it is never merged.
type ArticleSet struct {
	Articles []Article `json:"articles"`
}

// Summary returns the reduced projection of the article.
func (a Article) Summary() ArticleSummary {
	return ArticleSummary{
		ID:            a.ID,
		Slug:          a.Slug,
		Title:         a.Title,
		Description:   a.Description,
		CoverImgSrc:   a.CoverImgSrc,
		CoverImgAlt:   a.CoverImgAlt,
		PublishedDate: a.PublishedDate,
	}
}

// Summaries projects the whole set, preserving order and cardinality.
func (s *ArticleSet) Summaries() []ArticleSummary {
	out := make([]ArticleSummary, len(s.Articles))
	for i, a := range s.Articles {
		out[i] = a.Summary()
	}
	return out
}

// Validate checks the invariants the cache relies on: every article carries a
// non-empty, URL-safe slug, and slugs are unique within one set.
func (s *ArticleSet) Validate() error {
	seen := make(map[string]struct{}, len(s.Articles))
	for _, a := range s.Articles {
		if a.Slug == "" {
			return fmt.Errorf("article id=%d has an empty slug", a.ID)
		}
		if url.PathEscape(a.Slug) != a.Slug {
			return fmt.Errorf("article id=%d slug %q is not URL-safe", a.ID, a.Slug)
		}
		if _, dup := seen[a.Slug]; dup {
			return fmt.Errorf("duplicate slug %q in article set", a.Slug)
		}
		seen[a.Slug] = struct{}{}
	}
	return nil
}
