package db

import (
	"errors"
	"fmt"
	"strconv"
)

// FieldKind is the FT schema type of an indexed hash field.
type FieldKind string

// Field kinds used by the business index. Free text is matched in process,
// so TEXT fields are never indexed.
const (
	FieldTag     FieldKind = "TAG"
	FieldNumeric FieldKind = "NUMERIC"
)

// IndexField is a single SCHEMA entry.
type IndexField struct {
	Name string
	Kind FieldKind
}

// IndexDefinition describes an FT index over hashes sharing key prefixes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// Validate reports the first problem that would make FT.CREATE fail.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !isIdentifier(idx.Name) {
		return fmt.Errorf("index name %q contains invalid characters", idx.Name)
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]struct{}, len(idx.Fields))
	for i, f := range idx.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if f.Kind != FieldTag && f.Kind != FieldNumeric {
			return fmt.Errorf("field %s: unsupported kind %q", f.Name, f.Kind)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("duplicate field name: %s", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Args renders the FT.CREATE arguments that follow the command name.
func (idx *IndexDefinition) Args() []string {
	args := make([]string, 0, 6+len(idx.Prefixes)+2*len(idx.Fields))
	args = append(args, idx.Name, "ON", "HASH")
	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}
	args = append(args, "SCHEMA")
	for _, f := range idx.Fields {
		args = append(args, f.Name, string(f.Kind))
	}
	return args
}

// IndexBuilder assembles an IndexDefinition fluently.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts a hash index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Prefix restricts the index to keys with the given prefixes.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Tag adds exact-match fields.
func (b *IndexBuilder) Tag(names ...string) *IndexBuilder {
	return b.add(FieldTag, names)
}

// Numeric adds range-queryable fields.
func (b *IndexBuilder) Numeric(names ...string) *IndexBuilder {
	return b.add(FieldNumeric, names)
}

func (b *IndexBuilder) add(kind FieldKind, names []string) *IndexBuilder {
	for _, n := range names {
		b.def.Fields = append(b.def.Fields, IndexField{Name: n, Kind: kind})
	}
	return b
}

// Build validates and returns the definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	return &def, nil
}

// MustBuild is Build for definitions fixed at compile time.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// isIdentifier reports whether s matches [a-zA-Z0-9_:-]+.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == ':' || r == '-':
		default:
			return false
		}
	}
	return true
}
