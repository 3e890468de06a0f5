// Package wire holds the JSON plumbing shared by the payload and event
// types: tri-state optional fields, a strict object decoder that records
// unknown keys, an ordered object encoder that re-emits them, and the
// decode and validation error types.
package wire
