package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsAPISourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		w.Write([]byte(`{"articles":[
			{"title":"Flood devastates Jakarta","description":"Thousands displaced.","url":"https://example.com/a","publishedAt":"2025-08-30T10:00:00Z"},
			{"title":"Quiet day","description":"","url":"https://example.com/b","publishedAt":""}
		]}`))
	}))
	defer srv.Close()

	s := NewNewsAPISource("secret", time.Second)
	s.baseURL = srv.URL

	items, err := s.Fetch(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Flood devastates Jakarta", items[0].Title)
	assert.Equal(t, "https://example.com/a", items[0].URL)
	assert.Equal(t, "Jakarta", items[0].LocationHint)
	assert.Equal(t, "NewsAPI", items[0].SourceLabel)
	assert.Equal(t, "", items[1].Description)
}

func TestNewsAPISourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewNewsAPISource("bad", time.Second)
	s.baseURL = srv.URL

	_, err := s.Fetch(context.Background(), 5)
	assert.Error(t, err)
}

func TestTwitterSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Query().Get("query"), `"humanitarian crisis"`)
		assert.Equal(t, "15", r.URL.Query().Get("max_results"))
		w.Write([]byte(`{"data":[
			{"id":"42","text":"Massive flooding in Jakarta right now","created_at":"2025-08-30T10:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	s := NewTwitterSource("token123", time.Second)
	s.baseURL = srv.URL

	items, err := s.Fetch(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Massive flooding in Jakarta right now", items[0].Title)
	assert.Equal(t, "https://twitter.com/i/web/status/42", items[0].URL)
	assert.Equal(t, "Jakarta", items[0].LocationHint)
	assert.Equal(t, "Twitter", items[0].SourceLabel)
}

func TestTwitterSourceCapsMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("max_results"))
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	s := NewTwitterSource("token123", time.Second)
	s.baseURL = srv.URL

	items, err := s.Fetch(context.Background(), 500)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTwitterTitleTruncation(t *testing.T) {
	long := ""
	for range 12 {
		long += "0123456789"
	}
	assert.Equal(t, long[:100]+"...", truncate(long, 100))
	assert.Equal(t, "short", truncate("short", 100))
}

func TestTwitterTitleTruncationMultibyte(t *testing.T) {
	long := strings.Repeat("é", 120)
	got := truncate(long, 100)

	assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
	assert.Equal(t, strings.Repeat("é", 100)+"...", got)
	assert.Equal(t, 103, utf8.RuneCountInString(got))
}

func TestRedditSourceFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		w.Write([]byte(`{"access_token":"tok"}`))
	})
	mux.HandleFunc("/r/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":{"children":[
			{"data":{"title":"Earthquake hits Kathmandu","selftext":"","permalink":"/r/worldnews/1","created_utc":1756500000,"stickied":false}},
			{"data":{"title":"Subreddit rules","selftext":"read me","permalink":"/r/worldnews/2","created_utc":1756500000,"stickied":true}}
		]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := NewRedditSource("id", "secret", "test-agent", time.Second)
	s.baseURL = srv.URL
	s.oauthBaseURL = srv.URL

	items, err := s.Fetch(context.Background(), 22)
	require.NoError(t, err)
	// one non-stickied post per subreddit
	require.Len(t, items, len(crisisSubreddits))

	first := items[0]
	assert.Equal(t, "Earthquake hits Kathmandu", first.Title)
	assert.Equal(t, "Earthquake hits Kathmandu", first.Description)
	assert.Equal(t, "https://reddit.com/r/worldnews/1", first.URL)
	assert.Equal(t, "Kathmandu", first.LocationHint)
	assert.Equal(t, "Reddit r/worldnews", first.SourceLabel)
}

func TestRedditSourceTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewRedditSource("id", "secret", "test-agent", time.Second)
	s.baseURL = srv.URL
	s.oauthBaseURL = srv.URL

	_, err := s.Fetch(context.Background(), 10)
	assert.Error(t, err)
}

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Crisis Wire</title>
<link>https://example.com</link>
<description>test feed</description>
<item>
  <title>Drought worsens in Somalia</title>
  <link>https://example.com/drought</link>
  <description>&lt;p&gt;Aid groups warn of &lt;b&gt;famine&lt;/b&gt; conditions.&lt;/p&gt;</description>
  <pubDate>Sat, 30 Aug 2025 10:00:00 GMT</pubDate>
</item>
</channel></rss>`

func TestRSSSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	s := NewRSSSource([]string{srv.URL}, time.Second)

	items, err := s.Fetch(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Drought worsens in Somalia", item.Title)
	assert.Equal(t, "https://example.com/drought", item.URL)
	assert.Equal(t, "RSS", item.SourceLabel)
	assert.Equal(t, "Somalia", item.LocationHint)
	assert.NotContains(t, item.Description, "<p>")
	assert.Contains(t, item.Description, "famine")
	assert.NotEmpty(t, item.PublishedAt)
}

func TestRSSSourceSkipsBrokenFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewRSSSource([]string{srv.URL}, time.Second)

	items, err := s.Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}
