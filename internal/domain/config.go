package domain

// IndexConfig holds the search index schema. The reference field is returned as
// the key of each hit; the searchable fields are analyzed for full-text queries.
type IndexConfig struct {
	Name       string
	RefField   string
	Fields     []string
	TitleBoost float64
}

// DefaultIndexConfig returns the schema for site pages: hits are keyed by id,
// title and body are searchable.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		Name:     "site",
		RefField: "id",
		Fields:   []string{"title", "body"},
	}
}
