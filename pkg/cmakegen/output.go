// Package cmakegen collects CMake fragments and renders them into a complete CMakeLists.txt.
package cmakegen

import (
	"fmt"
	"strings"
)

// Output holds the two append-only fragment buffers of a generated CMakeLists.txt.
// The prelude ends up before the static boilerplate, the toplevel after it.
type Output struct {
	prelude  strings.Builder
	toplevel strings.Builder
}

// NewOutput returns empty buffers
func NewOutput() *Output {
	return &Output{}
}

// Prelude returns everything appended to the prelude so far
func (o *Output) Prelude() string {
	return o.prelude.String()
}

// Toplevel returns everything appended to the toplevel so far
func (o *Output) Toplevel() string {
	return o.toplevel.String()
}

// Render produces the final file
func (o *Output) Render(opts Options) string {
	return Render(opts, o.Prelude(), o.Toplevel())
}

// Project declares the CMake project
func (o *Output) Project(name string) {
	fmt.Fprintf(&o.prelude, "project(%s)\n", name)
}

// AddLibrary declares a library compiled from the given files
func (o *Output) AddLibrary(name string, files []string) {
	fmt.Fprintf(&o.toplevel, "add_library(%s\n  %s)\n", name, strings.Join(files, "\n  "))
}

// AddInterfaceLibrary declares a library without translation units. Such a library only carries
// usage requirements for its dependents.
func (o *Output) AddInterfaceLibrary(name string) {
	fmt.Fprintf(&o.toplevel, "add_library(%s INTERFACE)\n", name)
}

// LinkLibraries links deps into the target
func (o *Output) LinkLibraries(name string, deps []string) {
	o.linkLibraries(name, "", deps)
}

// LinkInterfaceLibraries makes deps part of the target's interface. Interface libraries can't
// link anything themselves, so the INTERFACE keyword is mandatory for them.
func (o *Output) LinkInterfaceLibraries(name string, deps []string) {
	o.linkLibraries(name, " INTERFACE", deps)
}

func (o *Output) linkLibraries(name, keyword string, deps []string) {
	fmt.Fprintf(&o.toplevel, "target_link_libraries(%s%s\n  %s)\n", name, keyword, strings.Join(deps, "\n  "))
}
