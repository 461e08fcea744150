// Package order implements the Order aggregate and its lifecycle state machine.
//
// An order is created NEW by intake, assigned to exactly one courier by the
// dispatcher or an operator, started and then delivered, or cancelled from
// any non-terminal state. Invalid transitions never mutate the aggregate and
// report *errs.ConflictError, which callers surface as a business conflict.
package order
