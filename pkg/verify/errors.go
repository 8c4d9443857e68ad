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

package verify

import "fmt"

// ErrorType represents the category of verification error.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeNoSignature indicates the artifact carries no unisign signature.
	ErrTypeNoSignature

	// ErrTypeMalformedSignature indicates the signature bytes cannot be decoded.
	ErrTypeMalformedSignature

	// ErrTypeSignatureInvalid indicates the cryptographic signature is invalid.
	ErrTypeSignatureInvalid

	// ErrTypeKey indicates the public key could not be read or parsed.
	ErrTypeKey

	// ErrTypeIO indicates an I/O error (file read/write).
	ErrTypeIO
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeNoSignature:
		return "NoSignature"
	case ErrTypeMalformedSignature:
		return "MalformedSignature"
	case ErrTypeSignatureInvalid:
		return "InvalidSignature"
	case ErrTypeKey:
		return "KeyError"
	case ErrTypeIO:
		return "IOError"
	default:
		return "UnknownError"
	}
}

// VerificationError is a structured error type for verification failures.
// It categorizes what went wrong so callers can distinguish a cryptographic
// failure from a missing or malformed signature.
type VerificationError struct {
	// Type is the category of the failure.
	Type ErrorType
	// Message describes the failure.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *VerificationError) Unwrap() error {
	return e.Err
}

// newError builds a VerificationError.
func newError(t ErrorType, message string, err error) *VerificationError {
	return &VerificationError{Type: t, Message: message, Err: err}
}
