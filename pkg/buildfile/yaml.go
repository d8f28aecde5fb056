package buildfile

import (
	"strconv"

	"go.starlark.net/starlark"
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the invocation as an ordered mapping with kind, position, positional arguments
// and attributes in source order.
func (inv *Invocation) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content,
		scalar("kind"), scalar(inv.Kind),
		scalar("pos"), scalar(inv.Pos.String()),
	)

	if len(inv.Args) > 0 {
		node.Content = append(node.Content, scalar("args"), valueNode(inv.Args))
	}

	if len(inv.Kwargs) > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, kv := range inv.Kwargs {
			attrs.Content = append(attrs.Content, scalar(string(kv[0].(starlark.String))), valueNode(kv[1]))
		}
		node.Content = append(node.Content, scalar("attrs"), attrs)
	}

	return node, nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func valueNode(value starlark.Value) *yaml.Node {
	switch value := value.(type) {
	case starlark.String:
		return scalar(value.GoString())
	case starlark.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(value))}
	case starlark.Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: value.String()}
	case starlark.Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: value.String()}
	case starlark.NoneType:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case *starlark.Dict:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, item := range value.Items() {
			key := item[0].String()
			if str, ok := item[0].(starlark.String); ok {
				key = str.GoString()
			}
			node.Content = append(node.Content, scalar(key), valueNode(item[1]))
		}
		return node
	case starlarkIterable:
		node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		iter := value.Iterate()
		defer iter.Done()

		var item starlark.Value
		for iter.Next(&item) {
			node.Content = append(node.Content, valueNode(item))
		}
		return node
	}

	return scalar(value.String())
}
