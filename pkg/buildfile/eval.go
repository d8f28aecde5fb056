package buildfile

import (
	"context"
)

// Dispatch validates inv against its rule and runs the rule's handler
func (v *Vocabulary) Dispatch(ctx context.Context, inv *Invocation) error {
	rule, ok := v.rules[inv.Kind]
	if !ok {
		return &UnsupportedRuleError{Pos: inv.Pos, Kind: inv.Kind, Vocabulary: v.name}
	}

	err := rule.check(inv)
	if err != nil {
		return err
	}

	Log(ctx).Debug().Str("kind", inv.Kind).Msgf("%s: %s", inv.Pos, inv.Kind)
	if rule.Handle == nil {
		return nil
	}
	return rule.Handle(ctx, inv)
}

// Eval parses src and dispatches every invocation in source order. It stops at the first error.
func (v *Vocabulary) Eval(ctx context.Context, filename string, src []byte) error {
	invocations, err := v.Parse(filename, src)
	if err != nil {
		return err
	}

	for _, inv := range invocations {
		err = v.Dispatch(ctx, inv)
		if err != nil {
			return err
		}
	}

	return nil
}
