// Copyright 2026 The Unisign Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package magic defines the unisign placeholder string and the primitives
// for locating and replacing it inside an artifact.
//
// The placeholder is exactly 92 bytes: the 4-byte prefix "us1-" followed by
// 88 base64 characters, the encoded size of a 64-byte Ed25519 signature.
// Because the encoded signature has the same length as the placeholder,
// signing replaces bytes in place and never shifts file offsets.
package magic

import (
	"bytes"
	"errors"
	"fmt"
)

// Placeholder is the magic string embedded in artifacts before signing.
// It is replaced verbatim with the prefixed, base64-encoded signature.
const Placeholder = "us1-r/GZBm1d749E+KbBLWaEnR5fNz626Deutp0P9F4ICt5EOqGw+DeMQUNHb5TLBt+gol0p82zcb9sMDO+Ai7e2TA=="

// Prefix identifies unisign signatures and placeholders. Both the
// placeholder and every encoded signature start with it.
const Prefix = "us1-"

// Length is the byte length of the placeholder and of every encoded
// signature: len(Prefix) + base64.StdEncoding.EncodedLen(ed25519 signature).
const Length = 92

var (
	// ErrNotFound is returned when the magic string is not present in the buffer.
	ErrNotFound = errors.New("magic string not found in buffer")
	// ErrMultiple is returned when the magic string occurs more than once.
	ErrMultiple = errors.New("multiple magic strings found in buffer")
	// ErrLengthMismatch is returned when a replacement has a different length than the original.
	ErrLengthMismatch = errors.New("replacement must have the same length as the original")
	// ErrInvalidOffset is returned when an offset falls outside the buffer.
	ErrInvalidOffset = errors.New("invalid offset")
	// ErrMismatch is returned when the expected bytes are not present at the given offset.
	ErrMismatch = errors.New("expected magic string not found at offset")
)

// FindOffset returns the offset of the first occurrence of magic in buf.
// Returns ErrNotFound when magic is absent or buf is too short.
func FindOffset(buf, magic []byte) (int64, error) {
	if len(magic) == 0 || len(buf) < len(magic) {
		return 0, ErrNotFound
	}

	offset := bytes.Index(buf, magic)
	if offset == -1 {
		return 0, ErrNotFound
	}

	return int64(offset), nil
}

// FindExactlyOne returns the offset of the single occurrence of magic in buf.
// Returns ErrNotFound when magic is absent and ErrMultiple when it occurs
// more than once. A file with two placeholders is ambiguous: the signature
// binds to one offset, so signing must refuse it.
func FindExactlyOne(buf, magic []byte) (int64, error) {
	first, err := FindOffset(buf, magic)
	if err != nil {
		return 0, err
	}

	second := bytes.Index(buf[first+int64(len(magic)):], magic)
	if second != -1 {
		return 0, fmt.Errorf("%w: found at least 2 occurrences", ErrMultiple)
	}

	return first, nil
}

// ReplaceAt replaces old with new in buf at the given offset.
// The replacement must have the same length as the original, the offset must
// be inside the buffer, and the original bytes must actually be present at
// the offset. buf is modified in place.
func ReplaceAt(buf []byte, offset int64, old, new []byte) error {
	if len(new) != len(old) {
		return ErrLengthMismatch
	}

	magicLen := int64(len(old))
	if offset < 0 || offset+magicLen > int64(len(buf)) {
		return ErrInvalidOffset
	}

	if !bytes.Equal(buf[offset:offset+magicLen], old) {
		return ErrMismatch
	}

	copy(buf[offset:], new)
	return nil
}
