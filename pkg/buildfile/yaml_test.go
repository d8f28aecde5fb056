package buildfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInvocationMarshalYAML(t *testing.T) {
	var calls []string
	invocations, err := testVocabulary(&calls).Parse("BUILD", []byte(`lib(name = "foo", srcs = ["b.c", "a.c"], shared = True)`))
	require.NoError(t, err)
	require.Len(t, invocations, 1)

	data, err := yaml.Marshal(invocations)
	require.NoError(t, err)

	var decoded []struct {
		Kind  string
		Pos   string
		Attrs yaml.Node
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "lib", decoded[0].Kind)
	assert.Equal(t, "BUILD:1:1", decoded[0].Pos)

	attrs := decoded[0].Attrs.Content
	require.Len(t, attrs, 6)
	assert.Equal(t, "name", attrs[0].Value)
	assert.Equal(t, "foo", attrs[1].Value)
	assert.Equal(t, "srcs", attrs[2].Value)
	require.Len(t, attrs[3].Content, 2)
	assert.Equal(t, "b.c", attrs[3].Content[0].Value, "list order is kept")
	assert.Equal(t, "shared", attrs[4].Value)
	assert.Equal(t, "!!bool", attrs[5].Tag)
}
