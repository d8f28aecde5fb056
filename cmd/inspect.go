package cmd

import (
	"io"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ngld/bazel2cmake/pkg/buildfile"
	"github.com/ngld/bazel2cmake/pkg/cmakegen"
	"github.com/ngld/bazel2cmake/pkg/convert"
	"github.com/ngld/bazel2cmake/pkg/rules"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Lists the rule calls in a WORKSPACE or BUILD file",
	Long: `Parses the given file and prints every rule call as YAML without translating anything.
Files named WORKSPACE or WORKSPACE.bazel use the workspace rules, all others the BUILD rules.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func vocabularyFor(path string) *buildfile.Vocabulary {
	// the output is discarded, inspect only needs the registry
	out := cmakegen.NewOutput()

	switch filepath.Base(path) {
	case "WORKSPACE", "WORKSPACE.bazel":
		return rules.Workspace(out)
	default:
		return rules.Build(out)
	}
}

func inspect(out io.Writer, path string) error {
	src, err := convert.ReadSource(path)
	if err != nil {
		return err
	}

	vocab := vocabularyFor(path)
	invocations, err := vocab.Parse(src.Name, src.Data)
	if err != nil {
		return err
	}

	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, inv := range invocations {
		value, err := inv.MarshalYAML()
		if err != nil {
			return err
		}

		_, recognized := vocab.Lookup(inv.Kind)
		recognizedValue := "false"
		if recognized {
			recognizedValue = "true"
		}

		node := value.(*yaml.Node)
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "recognized"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: recognizedValue},
		)
		doc.Content = append(doc.Content, node)
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	err = encoder.Encode(doc)
	if err != nil {
		return eris.Wrap(err, "failed to encode invocations")
	}

	return encoder.Close()
}
