package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("site").
		Ref("id").
		Text("title").
		Text("body").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "site" {
		t.Errorf("name = %q, want site", idx.Name)
	}
	if idx.RefField != "id" {
		t.Errorf("ref = %q, want id", idx.RefField)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "title" || idx.Fields[0].Type != IndexFieldText {
		t.Errorf("field[0] = %+v, want title TEXT", idx.Fields[0])
	}
	names := idx.FieldNames()
	if strings.Join(names, ",") != "title,body" {
		t.Errorf("FieldNames() = %v", names)
	}
}

func TestIndexBuilder_BoostAndKeyword(t *testing.T) {
	idx := NewIndex("site").
		Ref("id").
		Analyzer("en").
		TextWithBoost("title", 2).
		Keyword("url").
		MustBuild()

	if idx.Analyzer != "en" {
		t.Errorf("analyzer = %q", idx.Analyzer)
	}
	if idx.Fields[0].Boost != 2 {
		t.Errorf("boost = %f, want 2", idx.Fields[0].Boost)
	}
	if idx.Fields[1].Type != IndexFieldKeyword {
		t.Errorf("field[1] type = %v, want keyword", idx.Fields[1].Type)
	}
}

func TestIndexBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		builder *IndexBuilder
		wantErr string
	}{
		{"empty name", NewIndex("").Ref("id").Text("t"), "index name is required"},
		{"bad name", NewIndex("a b").Ref("id").Text("t"), "invalid characters"},
		{"no ref", NewIndex("x").Text("t"), "reference field is required"},
		{"no fields", NewIndex("x").Ref("id"), "at least one field"},
		{"ref searchable", NewIndex("x").Ref("id").Text("id"), "reference field cannot be searchable"},
		{"duplicate", NewIndex("x").Ref("id").Text("t").Text("t"), "duplicate field name"},
		{"negative boost", NewIndex("x").Ref("id").TextWithBoost("t", -1), "negative boost"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.builder.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestIndexBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewIndex("").MustBuild()
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"site", "site:idx", "a_b-c", "X1"}
	for _, s := range valid {
		if !IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = false", s)
		}
	}
	invalid := []string{"", "a b", "a/b", "ü"}
	for _, s := range invalid {
		if IsValidIdentifier(s) {
			t.Errorf("IsValidIdentifier(%q) = true", s)
		}
	}
}
