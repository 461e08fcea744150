// Package kernel holds value objects shared by the order and courier
// aggregates. Today that is only the UUID identifier.
package kernel
