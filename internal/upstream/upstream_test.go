package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchArticleSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"articles":[{"id":1,"slug":"hello-world","title":"Hello","description":null,"body":"...","author_full_name":null,"cover_img_src":null,"cover_img_alt":null,"is_active":true,"published_date":"2024-01-01","created_at":"a","updated_at":"b"}]}`))
	}))
	defer srv.Close()

	set, err := New(srv.URL, srv.Client()).FetchArticleSet(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Articles, 1)
	assert.Equal(t, "hello-world", set.Articles[0].Slug)
	assert.Nil(t, set.Articles[0].Description)
	assert.True(t, set.Articles[0].IsActive)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).FetchArticleSet(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := New(srv.URL, nil).FetchArticleSet(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchEmptySetIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	set, err := New(srv.URL, srv.Client()).FetchArticleSet(context.Background())
	require.NoError(t, err, "a present-but-empty articles list is a valid empty replace")
	assert.Empty(t, set.Articles)
}

func TestFetchShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>maintenance</html>`},
		{"duplicate slugs", `{"articles":[{"id":1,"slug":"x"},{"id":2,"slug":"x"}]}`},
		{"empty slug", `{"articles":[{"id":1,"slug":""}]}`},
		{"null body", `null`},
		{"missing articles key", `{}`},
		{"null articles", `{"articles":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, srv.Client()).FetchArticleSet(context.Background())
			assert.ErrorIs(t, err, ErrShape)
		})
	}
}
