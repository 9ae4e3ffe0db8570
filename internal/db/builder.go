package db

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{Name: name},
	}
}

// Ref sets the reference field returned as the key of each hit.
func (b *IndexBuilder) Ref(name string) *IndexBuilder {
	b.def.RefField = name
	return b
}

// Analyzer sets the default text analyzer.
func (b *IndexBuilder) Analyzer(name string) *IndexBuilder {
	b.def.Analyzer = name
	return b
}

// Text adds an analyzed full-text field.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name: name,
		Type: IndexFieldText,
	})
	return b
}

// TextWithBoost adds a full-text field whose matches are weighted by boost.
func (b *IndexBuilder) TextWithBoost(name string, boost float64) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:  name,
		Type:  IndexFieldText,
		Boost: boost,
	})
	return b
}

// Keyword adds an exact-match field.
func (b *IndexBuilder) Keyword(name string) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name: name,
		Type: IndexFieldKeyword,
	})
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	def.Fields = append([]IndexField(nil), b.def.Fields...)
	return &def, nil
}

// MustBuild is like Build but panics on validation errors.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic("db: invalid index definition: " + err.Error())
	}
	return def
}
