package rules

import (
	"context"

	"github.com/ngld/bazel2cmake/pkg/buildfile"
	"github.com/ngld/bazel2cmake/pkg/cmakegen"
	"go.starlark.net/starlark"
)

// ccLibrary holds the attributes of cc_library() that are translated
type ccLibrary struct {
	Name string
	Srcs []string
	Hdrs []string
	Deps []string
}

func decodeCcLibrary(inv *buildfile.Invocation) ccLibrary {
	return ccLibrary{
		Name: inv.String("name"),
		Srcs: inv.Strings("srcs"),
		Hdrs: inv.Strings("hdrs"),
		Deps: inv.Strings("deps"),
	}
}

// Build returns the vocabulary for BUILD files. Handlers write into out.
func Build(out *cmakegen.Output) *buildfile.Vocabulary {
	vocab := buildfile.NewVocabulary("build")

	vocab.Register(&buildfile.Rule{
		Kind: "cc_library",
		Attrs: []buildfile.Attr{
			{Name: "name", Type: buildfile.String, Required: true},
			{Name: "srcs", Type: buildfile.StringList},
			{Name: "hdrs", Type: buildfile.StringList},
			{Name: "deps", Type: buildfile.StringList},
		},
		Handle: func(ctx context.Context, inv *buildfile.Invocation) error {
			translateCcLibrary(ctx, out, decodeCcLibrary(inv))
			return nil
		},
	})

	// binaries and tests depend on upb_proto_library() which isn't translated yet
	vocab.Ignore([]string{"name"}, false,
		"cc_binary",
		"cc_test",
		"py_library",
		"py_binary",
		"lua_cclibrary",
		"lua_library",
		"lua_binary",
		"lua_test",
		"sh_test",
		"make_shell_script",
		"proto_library",
		"generated_file_staleness_test",
		"upb_amalgamation",
		"upb_proto_library",
		"upb_proto_reflection_library",
		"genrule",
		"config_setting",
	)
	vocab.Ignore(nil, true, "exports_files", "licenses")
	vocab.Ignore(nil, false, "package")

	vocab.Helper("select", buildfile.Empty)
	vocab.Helper("glob", buildfile.Empty)
	vocab.Helper("map_dep", mapDep)

	return vocab
}

func translateCcLibrary(ctx context.Context, out *cmakegen.Output, lib ccLibrary) {
	if reservedLibraries[lib.Name] {
		buildfile.Log(ctx).Debug().Str("target", lib.Name).Msg("Skipping generated library")
		return
	}

	files := make([]string, 0, len(lib.Srcs)+len(lib.Hdrs))
	files = append(files, lib.Srcs...)
	files = append(files, lib.Hdrs...)

	deps := StripScope(lib.Deps)
	if hasSources(files) {
		out.AddLibrary(lib.Name, files)
		if len(deps) > 0 {
			out.LinkLibraries(lib.Name, deps)
		}
	} else {
		// header-only library, see http://mariobadr.com/creating-a-header-only-library-with-cmake.html
		out.AddInterfaceLibrary(lib.Name)
		if len(deps) > 0 {
			out.LinkInterfaceLibraries(lib.Name, deps)
		}
	}
}

func mapDep(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var dep starlark.Value
	err := starlark.UnpackPositionalArgs("map_dep", args, kwargs, 1, &dep)
	if err != nil {
		return nil, err
	}

	return dep, nil
}
