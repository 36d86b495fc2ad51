package statebox

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ExprGuard compiles an expression into a Guard using expr-lang. The
// expression is evaluated against an environment exposing:
//
//   - payload: the entity's payload (scratch copy)
//   - event:   the event type as a string
//   - data:    the event's caller-supplied data
//
// For example: `data > 0 && event == "deposit"`. The expression must
// produce a boolean
func ExprGuard[T any](expression string) (Guard[T], error) {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, &GuardError{Expr: expression, Err: err}
	}

	return func(payload T, evt Event) (bool, error) {
		out, err := expr.Run(program, guardEnv(payload, evt))
		if err != nil {
			return false, &GuardError{Expr: expression, Err: err}
		}
		ok, isBool := out.(bool)
		if !isBool {
			return false, &GuardError{
				Expr: expression,
				Err:  fmt.Errorf("expected bool, got %T", out),
			}
		}
		return ok, nil
	}, nil
}

func guardEnv[T any](payload T, evt Event) map[string]any {
	return map[string]any{
		"payload": payload,
		"event":   string(evt.Type),
		"data":    evt.Data,
	}
}
