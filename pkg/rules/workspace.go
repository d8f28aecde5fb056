package rules

import (
	"context"

	"github.com/ngld/bazel2cmake/pkg/buildfile"
	"github.com/ngld/bazel2cmake/pkg/cmakegen"
)

// Workspace returns the vocabulary for WORKSPACE files. Handlers write into out.
func Workspace(out *cmakegen.Output) *buildfile.Vocabulary {
	vocab := buildfile.NewVocabulary("workspace")

	vocab.Register(&buildfile.Rule{
		Kind: "workspace",
		Attrs: []buildfile.Attr{
			{Name: "name", Type: buildfile.String, Required: true},
		},
		Handle: func(ctx context.Context, inv *buildfile.Invocation) error {
			out.Project(inv.String("name"))
			return nil
		},
	})

	// external dependencies are fetched by CMake users themselves
	vocab.Ignore([]string{"name"}, false, "http_archive", "git_repository")

	return vocab
}
