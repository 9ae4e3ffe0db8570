package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldText is an analyzed full-text field.
	IndexFieldText IndexFieldType = iota
	// IndexFieldKeyword is an exact-match field.
	IndexFieldKeyword
)

// IndexField describes a single searchable field.
type IndexField struct {
	Name string
	Type IndexFieldType
	// Analyzer names the text analyzer (engine specific). Empty uses the index default.
	Analyzer string
	// Boost weights matches in this field. Zero means 1.
	Boost float64
}

// IndexDefinition is a complete index definition used by CreateIndex.
type IndexDefinition struct {
	Name string
	// RefField is the document attribute used as the unique key of each hit.
	RefField string
	// Analyzer is the default text analyzer.
	Analyzer string
	Fields   []IndexField
}

// FieldNames returns the searchable field names in definition order.
func (idx *IndexDefinition) FieldNames() []string {
	names := make([]string, len(idx.Fields))
	for i := range idx.Fields {
		names[i] = idx.Fields[i].Name
	}
	return names
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if idx.RefField == "" {
		return errors.New("reference field is required")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if f.Name == idx.RefField {
			return errors.New("reference field cannot be searchable: " + f.Name)
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		if f.Boost < 0 {
			return errors.New("negative boost on field " + f.Name)
		}
	}

	return nil
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
