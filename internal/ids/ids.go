// Package ids generates short human-readable public identifiers.
package ids

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid"
)

// Alphabet excludes characters that are easy to confuse when read aloud or
// typed from paper: 0/O, 1/I and lowercase letters.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// Size is the random part length; 32^8 values keep collisions unlikely at
// the scale these IDs are used.
const Size = 8

// New returns an identifier of the form PREFIX-XXXXXXXX.
// The prefix is uppercased; an empty prefix yields just the random part.
func New(prefix string) (string, error) {
	id, err := gonanoid.Generate(Alphabet, Size)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	if prefix == "" {
		return id, nil
	}
	return strings.ToUpper(prefix) + "-" + id, nil
}

// Must is like New but panics on failure. Random source failures are not
// recoverable at call sites anyway.
func Must(prefix string) string {
	id, err := New(prefix)
	if err != nil {
		panic(err)
	}
	return id
}
