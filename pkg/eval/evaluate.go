package eval

import (
	"github.com/cockroachdb/errors"

	"tuplebase/pkg/types"
)

// Schema is the minimal attribute lookup a predicate needs from a table's
// schema: case-insensitive name resolution and the domain of a resolved
// position. Any concrete schema type that implements these two methods can
// drive Evaluate without eval importing the table package.
type Schema interface {
	AttrIndex(name string) (int, bool)
	DomainAt(index int) types.Domain
}

func opFromToken(tok string) types.CompareOp {
	switch tok {
	case "==":
		return types.Eq
	case "!=":
		return types.Ne
	case "<":
		return types.Lt
	case "<=":
		return types.Le
	case ">":
		return types.Gt
	default:
		return types.Ge
	}
}

// operand is the evaluator's stack cell: either an unresolved token
// (an attribute name or a literal, not yet known which) or a settled
// Boolean produced by a comparison or a conjunction/disjunction (spec §9).
type operand struct {
	isBool bool
	token  string
	b      bool
}

// Evaluate walks postfix against schema and tuple, using a stack of
// operands exactly as wide as the expression's nesting requires. A nil or
// empty postfix (the result of tokenizing an empty condition) always
// evaluates to true (spec §6.3).
func Evaluate(postfix []string, schema Schema, tuple []types.Value) (bool, error) {
	if len(postfix) == 0 {
		return true, nil
	}

	var stack []operand

	pop := func() (operand, error) {
		if len(stack) == 0 {
			return operand{}, errors.Wrapf(types.ErrIllFormedPredicate, "operand stack underflow")
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}
	popToken := func() (string, error) {
		o, err := pop()
		if err != nil {
			return "", err
		}
		if o.isBool {
			return "", errors.Wrapf(types.ErrIllFormedPredicate, "expected an operand token, got a boolean")
		}
		return o.token, nil
	}
	popBool := func() (bool, error) {
		o, err := pop()
		if err != nil {
			return false, err
		}
		if !o.isBool {
			return false, errors.Wrapf(types.ErrIllFormedPredicate, "expected a boolean, got token %q", o.token)
		}
		return o.b, nil
	}

	for _, tok := range postfix {
		switch {
		case isComparison(tok):
			rhs, err := popToken()
			if err != nil {
				return false, err
			}
			lhs, err := popToken()
			if err != nil {
				return false, err
			}
			result, err := evalComparison(schema, tuple, lhs, opFromToken(tok), rhs)
			if err != nil {
				return false, err
			}
			stack = append(stack, operand{isBool: true, b: result})

		case tok == "&" || tok == "|":
			rhs, err := popBool()
			if err != nil {
				return false, err
			}
			lhs, err := popBool()
			if err != nil {
				return false, err
			}
			v := lhs && rhs
			if tok == "|" {
				v = lhs || rhs
			}
			stack = append(stack, operand{isBool: true, b: v})

		default:
			stack = append(stack, operand{token: tok})
		}
	}

	result, err := popBool()
	if err != nil {
		return false, err
	}
	if len(stack) != 0 {
		return false, errors.Wrapf(types.ErrIllFormedPredicate, "operand stack not drained: %d left over", len(stack))
	}
	return result, nil
}

// evalComparison resolves which of lhs/rhs names a schema attribute and
// compares in the direction the infix expression actually stated: if lhs
// is the attribute, tuple[lhs] is compared against the parsed rhs; if rhs
// is the attribute instead, the parsed lhs is compared against tuple[rhs],
// preserving lhs-op-rhs order either way (spec §4.E). Neither side naming
// an attribute is ill-formed.
func evalComparison(schema Schema, tuple []types.Value, lhs string, op types.CompareOp, rhs string) (bool, error) {
	if pos, ok := schema.AttrIndex(lhs); ok {
		d := schema.DomainAt(pos)
		rhsVal, err := types.Parse(d, rhs)
		if err != nil {
			return false, err
		}
		return tuple[pos].Compare(op, rhsVal)
	}
	if pos, ok := schema.AttrIndex(rhs); ok {
		d := schema.DomainAt(pos)
		lhsVal, err := types.Parse(d, lhs)
		if err != nil {
			return false, err
		}
		return lhsVal.Compare(op, tuple[pos])
	}
	return false, errors.Wrapf(types.ErrIllFormedPredicate, "neither %q nor %q names an attribute", lhs, rhs)
}
