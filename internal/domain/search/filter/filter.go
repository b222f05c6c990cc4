// Package filter describes the coarse equality filter pushed down to storage.
package filter

import "fmt"

// MaxConditions is the maximum number of conditions per expression.
const MaxConditions = 8

// Filterable keys. Values are stored as tags: booleans as "true"/"false".
const (
	KeyCategoryID = "categoryId"
	KeyIsRemote   = "isRemote"
	KeyIsFeatured = "isFeatured"
)

var allowedKeys = map[string]bool{
	KeyCategoryID: true,
	KeyIsRemote:   true,
	KeyIsFeatured: true,
}

// Expression is a conjunction of exact-match conditions.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates an Expression.
func NewExpression(must ...Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many conditions (max %d)", MaxConditions)
	}
	seen := make(map[string]bool, len(must))
	for _, c := range must {
		if seen[c.key] {
			return Expression{}, fmt.Errorf("duplicate condition for key %q", c.key)
		}
		seen[c.key] = true
	}
	return Expression{must: must}, nil
}

// Must returns the conditions.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Value returns the match value for key, if constrained.
func (e Expression) Value(key string) (string, bool) {
	for _, c := range e.must {
		if c.key == key {
			return c.match, true
		}
	}
	return "", false
}

// Matches evaluates the expression against stored tag fields.
func (e Expression) Matches(fields map[string]string) bool {
	for _, c := range e.must {
		if fields[c.key] != c.match {
			return false
		}
	}
	return true
}

// Condition is a single exact tag match.
type Condition struct {
	key   string
	match string
}

// NewMatch creates an exact match condition on one of the filterable keys.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if !allowedKeys[key] {
		return Condition{}, fmt.Errorf("key %q is not filterable", key)
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Options are the coarse filters a caller may request.
type Options struct {
	CategoryID   string
	RemoteOnly   bool
	FeaturedOnly bool
}

// Build turns options into an expression. Unset options add no condition;
// there is no way to ask for isRemote=false.
func Build(o Options) Expression {
	var must []Condition
	if o.CategoryID != "" {
		must = append(must, Condition{key: KeyCategoryID, match: o.CategoryID})
	}
	if o.RemoteOnly {
		must = append(must, Condition{key: KeyIsRemote, match: "true"})
	}
	if o.FeaturedOnly {
		must = append(must, Condition{key: KeyIsFeatured, match: "true"})
	}
	return Expression{must: must}
}
