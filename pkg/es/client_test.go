package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netqa-go/internal/config"
	"netqa-go/internal/model"
)

// fakeES 模拟 Elasticsearch 的少量接口。
type fakeES struct {
	mu       sync.Mutex
	exists   bool
	created  bool
	indexed  map[string]string
	searchFn func(body string) string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	body, _ := io.ReadAll(r.Body)

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/kb":
		if f.exists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && r.URL.Path == "/kb":
		f.created = true
		f.exists = true
		_, _ = w.Write([]byte(`{"acknowledged": true, "index": "kb"}`))
	case strings.HasPrefix(r.URL.Path, "/kb/_doc/"):
		f.indexed[strings.TrimPrefix(r.URL.Path, "/kb/_doc/")] = string(body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result": "created"}`))
	case r.URL.Path == "/kb/_search":
		_, _ = w.Write([]byte(f.searchFn(string(body))))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}
}

func newIndex(t *testing.T, f *fakeES) *KnowledgeIndex {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	idx, err := NewKnowledgeIndex(config.ElasticsearchConfig{Addresses: srv.URL, IndexName: "kb"})
	require.NoError(t, err)
	return idx
}

func TestEnsureIndex(t *testing.T) {
	f := &fakeES{indexed: map[string]string{}}
	idx := newIndex(t, f)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.True(t, f.created)

	f.created = false
	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.False(t, f.created, "existing index must not be recreated")
}

func TestIndexAndSearch(t *testing.T) {
	f := &fakeES{
		indexed: map[string]string{},
		searchFn: func(body string) string {
			return `{"hits": {"total": {"value": 2}, "hits": [{"_id": "k2", "_score": 2.1}, {"_id": "k1", "_score": 1.3}]}}`
		},
	}
	idx := newIndex(t, f)
	proto := "p1"

	err := idx.Index(context.Background(), model.NewKnowledgeDocument(&model.Knowledge{
		KnowledgeID: "k1",
		ProtocolID:  &proto,
		Content:     "OSPF hello interval defaults to 10 seconds",
	}))
	require.NoError(t, err)

	var doc model.KnowledgeDocument
	require.NoError(t, json.Unmarshal([]byte(f.indexed["k1"]), &doc))
	assert.Equal(t, "p1", doc.ProtocolID)

	ids, err := idx.Search(context.Background(), "OSPF", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"k2", "k1"}, ids)
}

func TestSearch_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	t.Cleanup(srv.Close)

	idx, err := NewKnowledgeIndex(config.ElasticsearchConfig{Addresses: srv.URL, IndexName: "kb"})
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), "BGP", 5)
	assert.Error(t, err)
}
