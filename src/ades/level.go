// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ades

import (
	"fmt"
	"strings"
)

// Level is an AdES baseline conformance level.
type Level int

const (
	// LevelB is the basic signature.
	LevelB Level = iota
	// LevelBT adds a signature timestamp.
	LevelBT
	// LevelBLT adds validation material (certificates and CRLs).
	LevelBLT
	// LevelBLTA adds an archival timestamp.
	LevelBLTA
)

var levelNames = [...]string{
	LevelB:    "B",
	LevelBT:   "B_T",
	LevelBLT:  "B_LT",
	LevelBLTA: "B_LTA",
}

// Levels lists every supported level in ascending order.
func Levels() []Level { return []Level{LevelB, LevelBT, LevelBLT, LevelBLTA} }

// String returns the canonical name, e.g. "B_LT".
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool { return l >= LevelB && l <= LevelBLTA }

// RequiresTimestamp reports whether signing at l needs a timestamp authority.
func (l Level) RequiresTimestamp() bool { return l != LevelB }

// ParseLevel accepts "B", "B_T", "B-LT", "ades_b_lta" and similar spellings.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, "-", "_")
	name = strings.TrimPrefix(name, "ADES_")
	name = strings.TrimPrefix(name, "PADES_")

	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("ades: unknown conformance level %q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("ades: invalid conformance level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
