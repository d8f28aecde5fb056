// Package convert turns a Bazel WORKSPACE and BUILD file into a CMakeLists.txt.
package convert

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/ngld/bazel2cmake/pkg/cmakegen"
	"github.com/ngld/bazel2cmake/pkg/rules"
)

// Source is the full content of one description file
type Source struct {
	Name string
	Data []byte
}

// ReadSource reads the whole file at path
func ReadSource(path string) (Source, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Source{}, &InputUnavailableError{Path: path, Err: err}
	}

	return Source{Name: path, Data: data}, nil
}

// ReadSources reads the workspace and the build file. Both have to be readable.
func ReadSources(workspacePath, buildPath string) (workspace, build Source, err error) {
	workspace, err = ReadSource(workspacePath)
	if err != nil {
		return
	}

	build, err = ReadSource(buildPath)
	return
}

// Convert evaluates the workspace file and then the build file and renders the collected fragments.
// Nothing is returned unless both files were translated completely.
func Convert(ctx context.Context, opts cmakegen.Options, workspace, build Source) (string, error) {
	out := cmakegen.NewOutput()

	err := rules.Workspace(out).Eval(ctx, workspace.Name, workspace.Data)
	if err != nil {
		return "", eris.Wrapf(err, "failed to translate %s", workspace.Name)
	}

	err = rules.Build(out).Eval(ctx, build.Name, build.Data)
	if err != nil {
		return "", eris.Wrapf(err, "failed to translate %s", build.Name)
	}

	return out.Render(opts), nil
}

// WriteOutput stores content at path. The data goes to a temporary file next to path first
// which is then renamed, so path either has the complete content or is left untouched.
func WriteOutput(path string, content string) error {
	handle, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	tmpPath := handle.Name()

	_, err = handle.WriteString(content)
	if err == nil {
		err = handle.Chmod(0644)
	}
	if cErr := handle.Close(); err == nil {
		err = cErr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}

	if err != nil {
		os.Remove(tmpPath)
		return &OutputWriteError{Path: path, Err: err}
	}

	return nil
}
