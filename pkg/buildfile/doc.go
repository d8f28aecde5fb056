// Package buildfile reads Bazel WORKSPACE and BUILD files as plain data.
// The files are parsed with go.starlark.net/syntax but never executed: only top-level rule calls,
// literals, constants and a small set of value helpers are understood. Every call is dispatched
// to a rule registered in a Vocabulary.
package buildfile
