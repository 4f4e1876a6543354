// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
//
// These IDs are primary keys for stored records (BRDs, tasks). They are
// unrelated to the positional SRC-N identifiers the traceability registry
// derives; those are assigned by list order, not generated here.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Record prefixes.
const (
	BRDPrefix  = "brd-"
	TaskPrefix = "task-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewBRDID returns a new unique BRD ID.
func NewBRDID() (string, error) {
	return GenerateWithPrefix(BRDPrefix)
}

// NewTaskID returns a new unique task ID.
func NewTaskID() (string, error) {
	return GenerateWithPrefix(TaskPrefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
