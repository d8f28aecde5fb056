package buildfile

import (
	"fmt"

	"go.starlark.net/syntax"
)

// UnsupportedRuleError is returned when a call names a kind that the active vocabulary doesn't know
type UnsupportedRuleError struct {
	Pos        syntax.Position
	Kind       string
	Vocabulary string
}

func (e *UnsupportedRuleError) Error() string {
	return fmt.Sprintf("%s: unsupported %s rule %q", e.Pos, e.Vocabulary, e.Kind)
}

// MissingAttributeError is returned when a mandatory keyword attribute is absent
type MissingAttributeError struct {
	Pos  syntax.Position
	Kind string
	Attr string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: %s: missing mandatory attribute %q", e.Pos, e.Kind, e.Attr)
}

// AttributeTypeError is returned when an attribute value doesn't have the declared shape
type AttributeTypeError struct {
	Pos      syntax.Position
	Kind     string
	Attr     string
	Expected AttrType
	Found    string
}

func (e *AttributeTypeError) Error() string {
	return fmt.Sprintf("%s: %s: attribute %q must be a %s but is a %s", e.Pos, e.Kind, e.Attr, e.Expected, e.Found)
}

// ArgumentError reports a malformed argument list (repeated keywords, unexpected positional arguments)
type ArgumentError struct {
	Pos  syntax.Position
	Kind string
	Msg  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

// SyntaxError is returned for input that isn't valid Starlark or uses constructs outside of the
// declarative subset (functions, conditionals, loops, ...)
type SyntaxError struct {
	Pos syntax.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}
