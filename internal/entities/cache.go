// Package entities contains core business entities.
package entities

// UpdateOutcome tells whether a single-field cache mutation found its record.
type UpdateOutcome int

const (
	// FieldUpdated means the field was written.
	FieldUpdated UpdateOutcome = iota
	// FieldIgnored means no record existed for the key; this is not an error.
	FieldIgnored
)
