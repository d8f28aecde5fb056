package buildfile

import (
	"context"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Invocation is a single top-level rule call such as cc_library(name = "foo", ...).
type Invocation struct {
	Kind   string
	Pos    syntax.Position
	Args   starlark.Tuple
	Kwargs []starlark.Tuple
}

// Attr returns the value of the named keyword argument. None is reported as absent.
func (inv *Invocation) Attr(name string) (starlark.Value, bool) {
	for _, kv := range inv.Kwargs {
		if string(kv[0].(starlark.String)) == name {
			if kv[1] == starlark.None {
				return nil, false
			}
			return kv[1], true
		}
	}

	return nil, false
}

// Has reports whether the named keyword argument was passed
func (inv *Invocation) Has(name string) bool {
	_, ok := inv.Attr(name)
	return ok
}

// String returns the named attribute as a Go string or "" if it's absent or not a string.
func (inv *Invocation) String(name string) string {
	value, ok := inv.Attr(name)
	if !ok {
		return ""
	}

	str, ok := value.(starlark.String)
	if !ok {
		return ""
	}
	return str.GoString()
}

// Strings returns the named attribute as a string slice. Attributes of a different shape
// yield nil; call this only for attributes declared as StringList.
func (inv *Invocation) Strings(name string) []string {
	value, ok := inv.Attr(name)
	if !ok {
		return nil
	}

	iterable, ok := value.(starlarkIterable)
	if !ok {
		return nil
	}

	result, err := starlarkIterable2stringSlice(iterable, name)
	if err != nil {
		return nil
	}
	return result
}

// AttrType describes the accepted shape of an attribute value
type AttrType int

const (
	// Any accepts every value
	Any AttrType = iota
	// String accepts string literals
	String
	// StringList accepts lists or tuples that only contain strings
	StringList
)

func (t AttrType) String() string {
	switch t {
	case String:
		return "string"
	case StringList:
		return "list of strings"
	default:
		return "value"
	}
}

// Attr declares one keyword attribute of a rule
type Attr struct {
	Name     string
	Type     AttrType
	Required bool
}

// Handler translates a validated invocation
type Handler func(ctx context.Context, inv *Invocation) error

// Rule describes a recognized rule kind: its attribute schema and its handler.
// Rules without a handler are accepted and ignored.
type Rule struct {
	Kind       string
	Attrs      []Attr
	Positional bool
	Handle     Handler
}

// Helper is a function that can be called inside attribute values, like select() or glob().
type Helper func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// check validates the invocation against the rule's schema
func (r *Rule) check(inv *Invocation) error {
	if len(inv.Args) > 0 && !r.Positional {
		return &ArgumentError{
			Pos:  inv.Pos,
			Kind: inv.Kind,
			Msg:  fmt.Sprintf("got %d positional arguments but only keyword arguments are accepted", len(inv.Args)),
		}
	}

	for _, attr := range r.Attrs {
		value, ok := inv.Attr(attr.Name)
		if !ok {
			if attr.Required {
				return &MissingAttributeError{Pos: inv.Pos, Kind: inv.Kind, Attr: attr.Name}
			}
			continue
		}

		if !matchesType(value, attr.Type) {
			return &AttributeTypeError{
				Pos:      inv.Pos,
				Kind:     inv.Kind,
				Attr:     attr.Name,
				Expected: attr.Type,
				Found:    value.Type(),
			}
		}
	}

	return nil
}
