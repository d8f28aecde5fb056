package buildfile

import (
	"sort"

	"go.starlark.net/starlark"
)

// Vocabulary is the registry of rule kinds and value helpers that are valid in one kind of file
type Vocabulary struct {
	name    string
	rules   map[string]*Rule
	helpers map[string]Helper
}

// NewVocabulary returns an empty vocabulary. The name is only used in diagnostics.
func NewVocabulary(name string) *Vocabulary {
	return &Vocabulary{
		name:    name,
		rules:   make(map[string]*Rule),
		helpers: make(map[string]Helper),
	}
}

// Name returns the name passed to NewVocabulary
func (v *Vocabulary) Name() string {
	return v.name
}

// Register adds rules to the vocabulary, replacing earlier ones of the same kind
func (v *Vocabulary) Register(rules ...*Rule) {
	for _, rule := range rules {
		v.rules[rule.Kind] = rule
	}
}

// Ignore registers no-op rules that only require the given attributes
func (v *Vocabulary) Ignore(required []string, positional bool, kinds ...string) {
	attrs := make([]Attr, len(required))
	for idx, name := range required {
		attrs[idx] = Attr{Name: name, Type: String, Required: true}
	}

	for _, kind := range kinds {
		v.Register(&Rule{Kind: kind, Attrs: attrs, Positional: positional})
	}
}

// Helper registers a value helper
func (v *Vocabulary) Helper(name string, fn Helper) {
	v.helpers[name] = fn
}

// Lookup returns the rule registered for kind
func (v *Vocabulary) Lookup(kind string) (*Rule, bool) {
	rule, ok := v.rules[kind]
	return rule, ok
}

// Kinds returns the sorted names of all registered rules
func (v *Vocabulary) Kinds() []string {
	kinds := make([]string, 0, len(v.rules))
	for kind := range v.rules {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Empty always returns an empty list. It's the implementation of select() and glob() since neither
// conditions nor file patterns are translated.
func Empty(starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return starlark.NewList(nil), nil
}
