package rules

import "strings"

// ScopeMarker prefixes labels that refer to a target in the same package
const ScopeMarker = ":"

var (
	sourceExtensions  = []string{".c", ".cc"}
	reservedLibraries = map[string]bool{
		// both need code generation that can't be expressed in CMake
		"amalgamation":   true,
		"upbc_generator": true,
	}
)

// StripScope removes the leading ":" from same-package labels. Other labels are left alone and
// resolved by CMake. Unlike tools/make_cmakelists.py, which cut the first character of every dep,
// external labels keep their "@", so "@com_google_absl//absl/base" stays intact.
func StripScope(deps []string) []string {
	result := make([]string, len(deps))
	for idx, dep := range deps {
		result[idx] = strings.TrimPrefix(dep, ScopeMarker)
	}
	return result
}

// IsSourceFile reports whether name is a translation unit
func IsSourceFile(name string) bool {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func hasSources(files []string) bool {
	for _, name := range files {
		if IsSourceFile(name) {
			return true
		}
	}
	return false
}
