// Package cache owns the store key layout and the two cached projections of
// the article set: one full record per slug and one summary list under a
// fixed key.
package cache

// SummaryKey is the well-known key holding the serialized summary list for
// the whole article set.
const SummaryKey = "articles-summary"

const articleKeyPrefix = "article:"

// ArticleKey derives the store key for one article. The slug is the only
// externally addressable key, so this is the sole place key strings are built.
func ArticleKey(slug string) string {
	return articleKeyPrefix + slug
}
