// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// HandsetID addresses one logical remote/fan pairing. The protocol's
// identity field is 13 bits wide; zero is reserved as the uninitialized
// sentinel and never appears on the air.
//
// A HandsetID is immutable once chosen. The codec does not persist it;
// storage belongs to the calling integration.
type HandsetID uint16

// String renders the identity in the fixed-width hexadecimal form used for
// pairing confirmation and stored configuration, e.g. "0x15A9".
func (id HandsetID) String() string {
	return fmt.Sprintf("0x%04X", uint16(id))
}

// GenerateID draws a fresh identity uniformly from 0x0001-0x1FFF. The
// reserved zero sentinel is never returned.
func GenerateID() (HandsetID, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxHandsetID))
	if err != nil {
		return 0, fmt.Errorf("failed to generate handset id: %w", err)
	}
	// n is uniform over [0, MaxHandsetID); shift to [1, MaxHandsetID].
	return HandsetID(n.Int64() + 1), nil
}

// ValidateID checks that a raw value fits the identity field and is not the
// reserved sentinel.
func ValidateID(value uint64) (HandsetID, error) {
	if value == 0 {
		return 0, &InvalidIdentityError{Value: value, Reason: "zero is reserved"}
	}
	if value > MaxHandsetID {
		return 0, &InvalidIdentityError{Value: value, Reason: fmt.Sprintf("must fit in %d bits (max 0x%04X)", IdentityBits, MaxHandsetID)}
	}
	return HandsetID(value), nil
}

// ParseID parses a handset identity from its textual form. Accepts the
// canonical "0x15A9" form as well as bare decimal.
func ParseID(s string) (HandsetID, error) {
	s = strings.TrimSpace(s)
	value, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, &InvalidIdentityError{Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return ValidateID(value)
}
