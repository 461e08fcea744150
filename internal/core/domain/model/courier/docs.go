// Package courier provides the Courier aggregate: identity, availability and
// the active-load counter used by the dispatcher's least-loaded selection.
//
// Key business rules:
//   - Couriers are registered active with zero load
//   - Load is incremented when an order is assigned and decremented when an
//     assigned order is delivered or cancelled, never below zero
//   - Inactive couriers keep their load but cannot be assigned new orders
package courier
