package buildfile

import (
	"fmt"
	"math/big"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type parserCtx struct {
	vocab     *Vocabulary
	constants starlark.StringDict
}

var builtinConstants = starlark.StringDict{
	"True":  starlark.True,
	"False": starlark.False,
	"None":  starlark.None,
}

// Parse reads src and returns the top-level rule calls in source order. Nothing is dispatched yet,
// a file with a syntax error doesn't produce any invocation.
func (v *Vocabulary) Parse(filename string, src []byte) ([]*Invocation, error) {
	file, err := syntax.Parse(filename, src, 0)
	if err != nil {
		if serr, ok := err.(syntax.Error); ok {
			return nil, &SyntaxError{Pos: serr.Pos, Msg: serr.Msg}
		}
		return nil, &SyntaxError{Pos: syntax.MakePosition(&filename, 0, 0), Msg: err.Error()}
	}

	ctx := &parserCtx{
		vocab:     v,
		constants: starlark.StringDict{},
	}

	result := make([]*Invocation, 0, len(file.Stmts))
	for _, stmt := range file.Stmts {
		switch stmt := stmt.(type) {
		case *syntax.LoadStmt:
			// symbols from other files are never resolved
		case *syntax.AssignStmt:
			err = ctx.assign(stmt)
			if err != nil {
				return nil, err
			}
		case *syntax.ExprStmt:
			inv, err := ctx.statement(stmt)
			if err != nil {
				return nil, err
			}
			if inv != nil {
				result = append(result, inv)
			}
		default:
			return nil, unsupportedSyntax(stmt, "statement")
		}
	}

	return result, nil
}

func unsupportedSyntax(node syntax.Node, what string) error {
	pos, _ := node.Span()
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("unsupported %s %T; only rule calls, literals and constants are allowed", what, node)}
}

func (ctx *parserCtx) assign(stmt *syntax.AssignStmt) error {
	ident, ok := stmt.LHS.(*syntax.Ident)
	if stmt.Op != syntax.EQ || !ok {
		return unsupportedSyntax(stmt, "assignment")
	}

	if _, builtin := builtinConstants[ident.Name]; builtin {
		return &SyntaxError{Pos: ident.NamePos, Msg: fmt.Sprintf("cannot reassign %s", ident.Name)}
	}

	value, err := ctx.eval(stmt.RHS)
	if err != nil {
		return err
	}

	ctx.constants[ident.Name] = value
	return nil
}

// statement turns a top-level expression into an invocation. Helper calls are evaluated and
// dropped which is why the result may be nil.
func (ctx *parserCtx) statement(stmt *syntax.ExprStmt) (*Invocation, error) {
	call, ok := stmt.X.(*syntax.CallExpr)
	if !ok {
		return nil, unsupportedSyntax(stmt.X, "top-level expression")
	}

	fn, ok := call.Fn.(*syntax.Ident)
	if !ok {
		return nil, unsupportedSyntax(call.Fn, "callee")
	}

	if _, isHelper := ctx.vocab.helpers[fn.Name]; isHelper {
		_, err := ctx.eval(call)
		return nil, err
	}

	inv := &Invocation{
		Kind: fn.Name,
		Pos:  fn.NamePos,
	}

	var err error
	inv.Args, inv.Kwargs, err = ctx.arguments(fn.Name, call)
	if err != nil {
		return nil, err
	}

	return inv, nil
}

func (ctx *parserCtx) arguments(kind string, call *syntax.CallExpr) (starlark.Tuple, []starlark.Tuple, error) {
	args := starlark.Tuple{}
	kwargs := make([]starlark.Tuple, 0, len(call.Args))
	seen := make(map[string]bool)

	for _, arg := range call.Args {
		switch arg := arg.(type) {
		case *syntax.BinaryExpr:
			if arg.Op == syntax.EQ {
				key, ok := arg.X.(*syntax.Ident)
				if !ok {
					return nil, nil, unsupportedSyntax(arg.X, "keyword")
				}

				if seen[key.Name] {
					return nil, nil, &ArgumentError{
						Pos:  key.NamePos,
						Kind: kind,
						Msg:  fmt.Sprintf("keyword argument %q repeated", key.Name),
					}
				}
				seen[key.Name] = true

				value, err := ctx.eval(arg.Y)
				if err != nil {
					return nil, nil, err
				}

				kwargs = append(kwargs, starlark.Tuple{starlark.String(key.Name), value})
				continue
			}
		case *syntax.UnaryExpr:
			if arg.Op == syntax.STAR || arg.Op == syntax.STARSTAR {
				return nil, nil, unsupportedSyntax(arg, "argument unpacking")
			}
		}

		if len(kwargs) > 0 {
			pos, _ := arg.Span()
			return nil, nil, &ArgumentError{Pos: pos, Kind: kind, Msg: "positional argument follows keyword argument"}
		}

		value, err := ctx.eval(arg)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, value)
	}

	return args, kwargs, nil
}

func (ctx *parserCtx) eval(expr syntax.Expr) (starlark.Value, error) {
	switch expr := expr.(type) {
	case *syntax.Literal:
		return literal(expr)
	case *syntax.Ident:
		if value, ok := builtinConstants[expr.Name]; ok {
			return value, nil
		}
		if value, ok := ctx.constants[expr.Name]; ok {
			return value, nil
		}
		return nil, &SyntaxError{Pos: expr.NamePos, Msg: fmt.Sprintf("undefined name %s", expr.Name)}
	case *syntax.ParenExpr:
		return ctx.eval(expr.X)
	case *syntax.ListExpr:
		items, err := ctx.evalAll(expr.List)
		if err != nil {
			return nil, err
		}
		return starlark.NewList(items), nil
	case *syntax.TupleExpr:
		items, err := ctx.evalAll(expr.List)
		if err != nil {
			return nil, err
		}
		return starlark.Tuple(items), nil
	case *syntax.DictExpr:
		dict := starlark.NewDict(len(expr.List))
		for _, item := range expr.List {
			entry := item.(*syntax.DictEntry)
			key, err := ctx.eval(entry.Key)
			if err != nil {
				return nil, err
			}

			value, err := ctx.eval(entry.Value)
			if err != nil {
				return nil, err
			}

			err = dict.SetKey(key, value)
			if err != nil {
				pos, _ := entry.Span()
				return nil, &SyntaxError{Pos: pos, Msg: err.Error()}
			}
		}
		return dict, nil
	case *syntax.UnaryExpr:
		if expr.Op != syntax.MINUS && expr.Op != syntax.PLUS {
			return nil, unsupportedSyntax(expr, "operator")
		}

		x, err := ctx.eval(expr.X)
		if err != nil {
			return nil, err
		}

		value, err := starlark.Unary(expr.Op, x)
		if err != nil {
			return nil, &SyntaxError{Pos: expr.OpPos, Msg: err.Error()}
		}
		return value, nil
	case *syntax.BinaryExpr:
		if expr.Op != syntax.PLUS {
			return nil, unsupportedSyntax(expr, "operator")
		}

		x, err := ctx.eval(expr.X)
		if err != nil {
			return nil, err
		}

		y, err := ctx.eval(expr.Y)
		if err != nil {
			return nil, err
		}

		value, err := starlark.Binary(expr.Op, x, y)
		if err != nil {
			return nil, &SyntaxError{Pos: expr.OpPos, Msg: err.Error()}
		}
		return value, nil
	case *syntax.CallExpr:
		return ctx.helperCall(expr)
	}

	return nil, unsupportedSyntax(expr, "expression")
}

func (ctx *parserCtx) evalAll(exprs []syntax.Expr) ([]starlark.Value, error) {
	result := make([]starlark.Value, len(exprs))
	for idx, expr := range exprs {
		value, err := ctx.eval(expr)
		if err != nil {
			return nil, err
		}
		result[idx] = value
	}
	return result, nil
}

func (ctx *parserCtx) helperCall(call *syntax.CallExpr) (starlark.Value, error) {
	fn, ok := call.Fn.(*syntax.Ident)
	if !ok {
		return nil, unsupportedSyntax(call.Fn, "callee")
	}

	helper, ok := ctx.vocab.helpers[fn.Name]
	if !ok {
		if _, isRule := ctx.vocab.rules[fn.Name]; isRule {
			return nil, &SyntaxError{Pos: fn.NamePos, Msg: fmt.Sprintf("rule %s can only be called at the top level", fn.Name)}
		}
		return nil, &UnsupportedRuleError{Pos: fn.NamePos, Kind: fn.Name, Vocabulary: ctx.vocab.name}
	}

	args, kwargs, err := ctx.arguments(fn.Name, call)
	if err != nil {
		return nil, err
	}

	value, err := helper(args, kwargs)
	if err != nil {
		return nil, &ArgumentError{Pos: fn.NamePos, Kind: fn.Name, Msg: err.Error()}
	}
	return value, nil
}

func literal(lit *syntax.Literal) (starlark.Value, error) {
	switch value := lit.Value.(type) {
	case string:
		return starlark.String(value), nil
	case int64:
		return starlark.MakeInt64(value), nil
	case *big.Int:
		return starlark.MakeBigInt(value), nil
	case float64:
		return starlark.Float(value), nil
	}

	return nil, unsupportedSyntax(lit, "literal")
}
