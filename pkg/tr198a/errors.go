// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import "fmt"

// InvalidIdentityError reports a handset identity outside the protocol's
// 13-bit identity field, or the reserved zero sentinel.
type InvalidIdentityError struct {
	Value  uint64
	Reason string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid handset id 0x%04X: %s", e.Value, e.Reason)
}

// OutOfRangeError reports a command parameter outside its protocol domain.
type OutOfRangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s out of range: %d (valid %d-%d)", e.Field, e.Value, e.Min, e.Max)
}

// UnknownPresetError reports a breeze preset outside the fixed enumerated set.
type UnknownPresetError struct {
	Preset int
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown breeze preset %d (valid 1-3)", e.Preset)
}

// EncodingError reports an internal invariant violation inside the encoder.
// Command constructors validate every parameter before encoding, so this is
// only reachable by handing the encoder a zero-value or hand-rolled Command.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %s", e.Reason)
}
