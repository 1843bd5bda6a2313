package resultcache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/portal/internal/db"
	"github.com/kailas-cloud/portal/internal/domain/content"
	"github.com/kailas-cloud/portal/internal/domain/search/request"
	"github.com/kailas-cloud/portal/internal/domain/search/result"
)

type mockSearcher struct {
	page        result.Page
	suggestions []result.Suggestion
	items       []content.Item
	hits        []result.Result
	err         error

	searchCalls   int
	suggestCalls  int
	tagCalls      int
	semanticCalls int
}

func (m *mockSearcher) Search(_ context.Context, _ request.Request) (result.Page, error) {
	m.searchCalls++
	return m.page, m.err
}

func (m *mockSearcher) Suggest(_ context.Context, _ string, _ int) ([]result.Suggestion, error) {
	m.suggestCalls++
	return m.suggestions, m.err
}

func (m *mockSearcher) SearchByTags(_ context.Context, _ []string, _ int) ([]content.Item, error) {
	m.tagCalls++
	return m.items, m.err
}

func (m *mockSearcher) SemanticSearch(_ context.Context, _ string, _ int) ([]result.Result, error) {
	m.semanticCalls++
	return m.hits, m.err
}

// mockKVStore is an in-memory store that ignores TTLs.
type mockKVStore struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockKVStore) IncrBy(_ context.Context, key string, val int64) (int64, error) {
	n, _ := strconv.ParseInt(string(m.data[key]), 10, 64)
	n += val
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func newTestCachedSearcher(t *testing.T, inner *mockSearcher) (*CachedSearcher, *mockKVStore) {
	t.Helper()
	ms := newMockKVStore()
	return New(inner, ms, time.Minute, "test:", nil, zap.NewNop()), ms
}
