// Package bleve implements db.Store on top of in-memory bleve indexes.
package bleve

import (
	"context"
	"fmt"
	"sync"

	blevesearch "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/sitesearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultAnalyzer tokenizes, drops English stop words and stems.
const DefaultAnalyzer = en.AnalyzerName

type entry struct {
	def   *db.IndexDefinition
	index blevesearch.Index
}

// Store keeps named bleve indexes in memory. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	indexes map[string]*entry
	closed  bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{indexes: make(map[string]*entry)}
}

// Ping reports an error once the store has been closed.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("ping: store closed")
	}
	return nil
}

// CreateIndex builds an empty in-memory index for def.
func (s *Store) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[def.Name]; ok {
		return fmt.Errorf("create index %s: %w", def.Name, db.ErrIndexExists)
	}

	idx, err := blevesearch.NewMemOnly(buildMapping(def))
	if err != nil {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	s.indexes[def.Name] = &entry{def: def, index: idx}
	return nil
}

// DropIndex closes and forgets the named index.
func (s *Store) DropIndex(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.indexes[name]
	if !ok {
		return fmt.Errorf("drop index %s: %w", name, db.ErrIndexNotFound)
	}
	delete(s.indexes, name)
	if err := e.index.Close(); err != nil {
		return fmt.Errorf("drop index %s: %w", name, err)
	}
	return nil
}

// IndexExists reports whether the named index was created.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indexes[name]
	return ok, nil
}

// IndexDocuments loads docs in a single batch. Each document is keyed by its
// reference field; only the definition's searchable fields are indexed.
func (s *Store) IndexDocuments(ctx context.Context, index string, docs []map[string]any) error {
	e, err := s.get(index)
	if err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	batch := e.index.NewBatch()
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("index documents: %w", err)
		}

		ref, ok := doc[e.def.RefField]
		if !ok || ref == nil {
			return fmt.Errorf("index documents: item %d: %w %q", i, db.ErrMissingRef, e.def.RefField)
		}

		fields := make(map[string]any, len(e.def.Fields))
		for _, f := range e.def.Fields {
			if v, ok := doc[f.Name]; ok {
				fields[f.Name] = v
			}
		}
		if err := batch.Index(fmt.Sprint(ref), fields); err != nil {
			return fmt.Errorf("index documents: item %d: %w", i, err)
		}
	}

	if err := e.index.Batch(batch); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}
	return nil
}

// SearchText runs q against the index and returns hits ordered by descending score.
// The query uses bleve's query-string syntax; input that does not parse is
// searched as plain text across the searchable fields instead.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search text: %w", err)
	}
	e, err := s.get(q.IndexName)
	if err != nil {
		return nil, fmt.Errorf("search text: %w", err)
	}

	size := q.Size
	if size <= 0 {
		n, err := e.index.DocCount()
		if err != nil {
			return nil, fmt.Errorf("search text: doc count: %w", err)
		}
		size = int(n)
	}

	req := blevesearch.NewSearchRequestOptions(buildQuery(e.def, q.Query), size, 0, false)
	res, err := e.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search text %s: %w", q.IndexName, err)
	}

	out := &db.SearchResult{
		Total:   int(res.Total),
		Entries: make([]db.SearchEntry, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		out.Entries = append(out.Entries, db.SearchEntry{Key: hit.ID, Score: hit.Score})
	}
	return out, nil
}

// DocCount returns the number of indexed documents.
func (s *Store) DocCount(_ context.Context, index string) (uint64, error) {
	e, err := s.get(index)
	if err != nil {
		return 0, fmt.Errorf("doc count: %w", err)
	}
	n, err := e.index.DocCount()
	if err != nil {
		return 0, fmt.Errorf("doc count %s: %w", index, err)
	}
	return n, nil
}

// Close releases every index. The store cannot be reused.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for name, e := range s.indexes {
		if err := e.index.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close index %s: %w", name, err)
		}
		delete(s.indexes, name)
	}
	s.closed = true
	return firstErr
}

func (s *Store) get(name string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, db.ErrIndexNotFound)
	}
	return e, nil
}

func buildMapping(def *db.IndexDefinition) *mapping.IndexMappingImpl {
	analyzer := def.Analyzer
	if analyzer == "" {
		analyzer = DefaultAnalyzer
	}

	docMapping := blevesearch.NewDocumentStaticMapping()
	for _, f := range def.Fields {
		var fm *mapping.FieldMapping
		switch f.Type {
		case db.IndexFieldKeyword:
			fm = blevesearch.NewKeywordFieldMapping()
		default:
			fm = blevesearch.NewTextFieldMapping()
			fm.Analyzer = analyzer
			if f.Analyzer != "" {
				fm.Analyzer = f.Analyzer
			}
		}
		fm.Store = false
		docMapping.AddFieldMappingsAt(f.Name, fm)
	}

	im := blevesearch.NewIndexMapping()
	im.DefaultAnalyzer = analyzer
	im.DefaultMapping = docMapping
	return im
}

// buildQuery parses term as a query string, falling back to a disjunction of
// per-field match queries when the syntax is invalid (e.g. "C++" or "title:").
// Field boosts apply on both paths.
func buildQuery(def *db.IndexDefinition, term string) query.Query {
	parsed, err := blevesearch.NewQueryStringQuery(term).Parse()
	if err == nil {
		return scopeFields(parsed, def.Fields)
	}

	matches := make([]query.Query, 0, len(def.Fields))
	for _, f := range def.Fields {
		mq := blevesearch.NewMatchQuery(term)
		mq.SetField(f.Name)
		mq.SetBoost(fieldBoost(f))
		matches = append(matches, mq)
	}
	return blevesearch.NewDisjunctionQuery(matches...)
}

// scopeFields rewrites a parsed query so that unscoped leaves search each
// definition field with its boost instead of the composite _all field.
// Leaves already scoped by the user (title:foo) keep their field and get
// that field's boost. The tree is modified in place.
func scopeFields(q query.Query, fields []db.IndexField) query.Query {
	switch t := q.(type) {
	case *query.BooleanQuery:
		if t.Must != nil {
			t.Must = scopeFields(t.Must, fields)
		}
		if t.Should != nil {
			t.Should = scopeFields(t.Should, fields)
		}
		if t.MustNot != nil {
			t.MustNot = scopeFields(t.MustNot, fields)
		}
		return t
	case *query.ConjunctionQuery:
		for i, c := range t.Conjuncts {
			t.Conjuncts[i] = scopeFields(c, fields)
		}
		return t
	case *query.DisjunctionQuery:
		for i, c := range t.Disjuncts {
			t.Disjuncts[i] = scopeFields(c, fields)
		}
		return t
	case query.FieldableQuery:
		return scopeLeaf(t, fields)
	}
	return q
}

func scopeLeaf(leaf query.FieldableQuery, fields []db.IndexField) query.Query {
	if name := leaf.Field(); name != "" {
		for _, f := range fields {
			if f.Name != name {
				continue
			}
			if bq, ok := leaf.(query.BoostableQuery); ok {
				bq.SetBoost(bq.Boost() * fieldBoost(f))
			}
		}
		return leaf
	}

	perField := make([]query.Query, 0, len(fields))
	for _, f := range fields {
		if c := cloneLeaf(leaf, f); c != nil {
			perField = append(perField, c)
		}
	}
	if len(perField) == 0 {
		return leaf
	}
	// Query-string mode keeps stop-word-only leaves (match none) skippable by
	// the enclosing clauses, as they are for the unscoped query.
	return query.NewBooleanQueryForQueryString(nil, perField, nil)
}

// cloneLeaf copies a text leaf onto field f. Other leaf kinds (numeric and
// date ranges) return nil and stay unscoped.
func cloneLeaf(leaf query.FieldableQuery, f db.IndexField) query.Query {
	boost := fieldBoost(f)
	switch l := leaf.(type) {
	case *query.MatchQuery:
		c := *l
		c.SetField(f.Name)
		c.SetBoost(l.Boost() * boost)
		return &c
	case *query.MatchPhraseQuery:
		c := *l
		c.SetField(f.Name)
		c.SetBoost(l.Boost() * boost)
		return &c
	case *query.WildcardQuery:
		c := *l
		c.SetField(f.Name)
		c.SetBoost(l.Boost() * boost)
		return &c
	case *query.RegexpQuery:
		c := *l
		c.SetField(f.Name)
		c.SetBoost(l.Boost() * boost)
		return &c
	}
	return nil
}

func fieldBoost(f db.IndexField) float64 {
	if f.Boost > 0 {
		return f.Boost
	}
	return 1
}
