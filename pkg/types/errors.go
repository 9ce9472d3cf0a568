package types

import "github.com/cockroachdb/errors"

// ErrDomainMismatch is returned when a value's runtime type does not match
// the domain tag it is being checked against (spec §7 DomainMismatch).
var ErrDomainMismatch = errors.New("tuplebase: domain mismatch")

// ErrIllFormedPredicate is returned when a comparison or parse operation
// cannot be carried out against a domain value (spec §7 IllFormedPredicate).
// It is also returned by the evaluator package, which wraps it with
// operator-specific context.
var ErrIllFormedPredicate = errors.New("tuplebase: ill-formed predicate")
