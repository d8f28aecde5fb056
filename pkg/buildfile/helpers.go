package buildfile

import (
	"github.com/rotisserie/eris"
	"go.starlark.net/starlark"
)

type starlarkIterable interface {
	Len() int
	Iterate() starlark.Iterator
}

func starlarkIterable2stringSlice(input starlarkIterable, field string) ([]string, error) {
	if value, ok := input.(*starlark.List); ok && value == nil {
		return []string{}, nil
	}

	result := make([]string, 0, input.Len())
	iter := input.Iterate()
	defer iter.Done()

	var item starlark.Value
	for iter.Next(&item) {
		switch value := item.(type) {
		case starlark.String:
			result = append(result, value.GoString())
		default:
			return nil, eris.Errorf("expected all items in %s to be strings but found %s", field, item.Type())
		}
	}
	return result, nil
}

func matchesType(value starlark.Value, attrType AttrType) bool {
	switch attrType {
	case String:
		_, ok := value.(starlark.String)
		return ok
	case StringList:
		switch value.(type) {
		case *starlark.List, starlark.Tuple:
		default:
			return false
		}

		_, err := starlarkIterable2stringSlice(value.(starlarkIterable), "")
		return err == nil
	default:
		return true
	}
}
