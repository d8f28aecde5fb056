package cmakegen

import (
	"strings"
	"text/template"
)

// Options controls the static parts of the generated file
type Options struct {
	// Source is the build file named in the provenance comment, BUILD if empty
	Source string
	// Generator is named in the provenance comment at the top of the file
	Generator string
	// OptionPrefix prefixes the ASAN/UBSAN toggles, i.e. UPB turns into UPB_ENABLE_ASAN
	OptionPrefix string
}

// DefaultOptions reproduces the output of the original tools/make_cmakelists.py
var DefaultOptions = Options{
	Source:       "BUILD",
	Generator:    "tools/make_cmakelists.py",
	OptionPrefix: "UPB",
}

type templateData struct {
	Options
	Prelude  string
	Toplevel string
}

var cmakeLists = template.Must(template.New("CMakeLists.txt").Parse(`# This file was generated from {{.Source}} using {{.Generator}}.

cmake_minimum_required(VERSION 3.1)

if(${CMAKE_VERSION} VERSION_LESS 3.12)
    cmake_policy(VERSION ${CMAKE_MAJOR_VERSION}.${CMAKE_MINOR_VERSION})
else()
    cmake_policy(VERSION 3.12)
endif()

cmake_minimum_required (VERSION 3.0)
cmake_policy(SET CMP0048 NEW)

{{.Prelude}}

# Prevent CMake from setting -rdynamic on Linux (!!).
SET(CMAKE_SHARED_LIBRARY_LINK_C_FLAGS "")
SET(CMAKE_SHARED_LIBRARY_LINK_CXX_FLAGS "")

# Set default build type.
if(NOT CMAKE_BUILD_TYPE)
  message(STATUS "Setting build type to 'RelWithDebInfo' as none was specified.")
  set(CMAKE_BUILD_TYPE "RelWithDebInfo" CACHE STRING
      "Choose the type of build, options are: Debug Release RelWithDebInfo MinSizeRel."
      FORCE)
endif()

# When using Ninja, compiler output won't be colorized without this.
include(CheckCXXCompilerFlag)
CHECK_CXX_COMPILER_FLAG(-fdiagnostics-color=always SUPPORTS_COLOR_ALWAYS)
if(SUPPORTS_COLOR_ALWAYS)
  set(CMAKE_CXX_FLAGS "${CMAKE_CXX_FLAGS} -fdiagnostics-color=always")
endif()

# Implement ASAN/UBSAN options
if({{.OptionPrefix}}_ENABLE_ASAN)
  set(CMAKE_CXX_FLAGS "${CMAKE_CXX_FLAGS} -fsanitize=address")
  set(CMAKE_C_FLAGS "${CMAKE_C_FLAGS} -fsanitize=address")
  set(CMAKE_EXE_LINKER_FLAGS "${CMAKE_EXE_LINKER_FLAGS} -fsanitize=address")
  set(CMAKE_SHARED_LINKER_FLAGS "${CMAKE_SHARED_LINKER_FLAGS} -fsanitize=address")
endif()

if({{.OptionPrefix}}_ENABLE_UBSAN)
  set(CMAKE_CXX_FLAGS "${CMAKE_CXX_FLAGS} -fsanitize=undefined")
  set(CMAKE_C_FLAGS "${CMAKE_C_FLAGS} -fsanitize=address")
  set(CMAKE_EXE_LINKER_FLAGS "${CMAKE_EXE_LINKER_FLAGS} -fsanitize=address")
  set(CMAKE_SHARED_LINKER_FLAGS "${CMAKE_SHARED_LINKER_FLAGS} -fsanitize=address")
endif()

include_directories(.)
include_directories(${CMAKE_CURRENT_BINARY_DIR})

if(APPLE)
  set(CMAKE_SHARED_LINKER_FLAGS "${CMAKE_SHARED_LINKER_FLAGS} -undefined dynamic_lookup -flat_namespace")
elseif(UNIX)
  set(CMAKE_EXE_LINKER_FLAGS "${CMAKE_EXE_LINKER_FLAGS} -Wl,--build-id")
endif()

enable_testing()

{{.Toplevel}}

`))

// Render substitutes prelude and toplevel into the CMakeLists.txt template.
// The result only depends on its arguments.
func Render(opts Options, prelude, toplevel string) string {
	var buffer strings.Builder
	if opts.Source == "" {
		opts.Source = DefaultOptions.Source
	}

	// the template only contains plain fields and the data is always complete
	err := cmakeLists.Execute(&buffer, templateData{
		Options:  opts,
		Prelude:  prelude,
		Toplevel: toplevel,
	})
	if err != nil {
		panic(err)
	}

	return buffer.String()
}
