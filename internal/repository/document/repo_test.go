package document

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/sitesearch/internal/db"
	"github.com/kailas-cloud/sitesearch/internal/domain"
)

func TestBuildIndex_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)

	var created *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		created = def
		return nil
	}
	var loaded []map[string]any
	ms.indexDocumentsFn = func(_ context.Context, index string, docs []map[string]any) error {
		if index != "site" {
			t.Errorf("unexpected index: %s", index)
		}
		loaded = docs
		return nil
	}

	n, err := repo.BuildIndex(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded = %d, want 2", n)
	}
	if created == nil || created.RefField != "id" {
		t.Fatalf("unexpected definition: %+v", created)
	}
	if len(created.Fields) != 2 || created.Fields[0].Name != "title" || created.Fields[1].Name != "body" {
		t.Errorf("unexpected fields: %+v", created.Fields)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded))
	}
	if loaded[0]["id"] != 0 || loaded[0]["title"] != "Alpha" || loaded[0]["body"] != "first body" {
		t.Errorf("item[0] = %v", loaded[0])
	}
	if loaded[1]["id"] != 1 {
		t.Errorf("item[1] = %v", loaded[1])
	}
}

func TestBuildIndex_TitleBoost(t *testing.T) {
	cfg := domain.DefaultIndexConfig()
	cfg.TitleBoost = 3
	repo := New(&mockStore{}, &mockSource{}, cfg)

	def, err := repo.Definition()
	if err != nil {
		t.Fatalf("Definition: %v", err)
	}
	if def.Fields[0].Boost != 3 {
		t.Errorf("title boost = %f, want 3", def.Fields[0].Boost)
	}
	if def.Fields[1].Boost != 0 {
		t.Errorf("body boost = %f, want 0", def.Fields[1].Boost)
	}
}

func TestBuildIndex_AlreadyExists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexExistsFn = func(context.Context, string) (bool, error) { return true, nil }

	_, err := repo.BuildIndex(context.Background())
	if !errors.Is(err, db.ErrIndexExists) {
		t.Fatalf("expected ErrIndexExists, got %v", err)
	}
}

func TestBuildIndex_LoadError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.indexDocumentsFn = func(context.Context, string, []map[string]any) error {
		return errors.New("boom")
	}

	if _, err := repo.BuildIndex(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildIndex_InvalidSchema(t *testing.T) {
	repo := New(&mockStore{}, &mockSource{}, domain.IndexConfig{Name: "site"})
	if _, err := repo.BuildIndex(context.Background()); err == nil {
		t.Fatal("expected schema error")
	}
}

func TestGet(t *testing.T) {
	repo, _ := newTestRepo(t)

	doc, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.URL() != "/b" {
		t.Errorf("URL() = %q", doc.URL())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Get(context.Background(), 42)
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
