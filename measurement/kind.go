// SPDX-License-Identifier: MIT

package measurement

import (
	"fmt"
	"strings"
)

// Kind is the measured physical quantity.
type Kind uint8

const (
	// KindUnknown is the zero value and is never valid.
	KindUnknown Kind = iota
	// P is active power injection at a bus.
	P
	// Q is reactive power injection at a bus.
	Q
	// V2 is the squared voltage magnitude at a bus.
	V2
	// Pf is active power flow on one side of a branch.
	Pf
	// Qf is reactive power flow on one side of a branch.
	Qf
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	P:           "P",
	Q:           "Q",
	V2:          "V2",
	Pf:          "Pf",
	Qf:          "Qf",
}

// String returns the short name used in reports and configuration files.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the five measurement kinds.
func (k Kind) Valid() bool {
	return k >= P && k <= Qf
}

// IsFlow reports whether k is located on a directed bus pair.
func (k Kind) IsFlow() bool {
	return k == Pf || k == Qf
}

// IsReactive reports whether k uses the reactive-power bracket.
func (k Kind) IsReactive() bool {
	return k == Q || k == Qf
}

// ParseKind resolves a case-insensitive kind name ("P", "q", "V2", "pf", "QF").
func ParseKind(s string) (Kind, error) {
	for k := P; k <= Qf; k++ {
		if strings.EqualFold(s, kindNames[k]) {
			return k, nil
		}
	}

	return KindUnknown, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("MarshalText(%d): %w", uint8(k), ErrUnknownKind)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}
