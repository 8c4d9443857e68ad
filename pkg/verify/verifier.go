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

// Package verify checks unisign signatures embedded in artifacts.
//
// Verification is the mirror image of signing: locate the encoded signature
// by its prefix, restore the placeholder into a copy of the artifact, and
// verify the signature over the framed copy. A valid signature proves the
// artifact is byte-identical to the one that was signed.
package verify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oreparaz/unisign/pkg/logging"
	"github.com/oreparaz/unisign/pkg/magic"
	"github.com/oreparaz/unisign/pkg/signing"
	"github.com/oreparaz/unisign/pkg/utils"
)

// Result reports the outcome of a verification.
type Result struct {
	// Verified is true when the signature is valid.
	Verified bool
	// Message is a human-readable summary of the outcome.
	Message string
	// Offset is the byte offset of the signature in the artifact.
	Offset int64
}

// VerifierOptions configures a Verifier.
type VerifierOptions struct {
	// InputPath is the signed artifact.
	InputPath string
	// PublicKeyPath is the SSH public key file in authorized_keys format.
	PublicKeyPath string
	// Logger receives progress output. Defaults to the package default.
	Logger logging.Logger
}

// Verifier verifies the embedded signature of a single artifact.
type Verifier struct {
	opts VerifierOptions
	log  logging.Logger
}

// NewVerifier validates the options and returns a Verifier.
func NewVerifier(opts VerifierOptions) (*Verifier, error) {
	if err := utils.ValidateFileExists("input file", opts.InputPath); err != nil {
		return nil, err
	}
	if err := utils.ValidateFileExists("public key", opts.PublicKeyPath); err != nil {
		return nil, err
	}
	return &Verifier{
		opts: opts,
		log:  logging.EnsureLogger(opts.Logger),
	}, nil
}

// Verify performs the complete verification flow.
//
// This orchestrates:
// 1. Reading the artifact and locating the embedded signature by prefix
// 2. Decoding the signature bytes
// 3. Restoring the placeholder into a copy of the artifact
// 4. Verifying the signature over the framed copy with the public key
func (v *Verifier) Verify(_ context.Context) (Result, error) {
	v.log.Info("verifying %s", filepath.Clean(v.opts.InputPath))
	v.log.Debug("  --key: %s", v.opts.PublicKeyPath)

	data, err := os.ReadFile(v.opts.InputPath)
	if err != nil {
		return fail(newError(ErrTypeIO, "reading input file", err))
	}

	offset, encoded, err := ExtractSignature(data)
	if err != nil {
		return fail(err)
	}
	v.log.Debug("signature found at offset %d", offset)

	signature, err := base64.StdEncoding.DecodeString(string(encoded[len(magic.Prefix):]))
	if err != nil {
		return fail(newError(ErrTypeMalformedSignature, "decoding signature", err))
	}

	pubKey, err := signing.ReadPublicKey(v.opts.PublicKeyPath)
	if err != nil {
		return fail(newError(ErrTypeKey, "reading public key", err))
	}

	// Reconstruct the artifact as it looked before signing.
	restored := make([]byte, len(data))
	copy(restored, data)
	if err := magic.ReplaceAt(restored, offset, encoded, []byte(magic.Placeholder)); err != nil {
		return fail(newError(ErrTypeMalformedSignature, "restoring placeholder", err))
	}

	if err := signing.VerifyBuffer(pubKey, restored, uint64(offset), signature); err != nil {
		return fail(newError(ErrTypeSignatureInvalid, "signature does not match artifact", err))
	}

	v.log.Info("signature verified at offset %d", offset)
	return Result{
		Verified: true,
		Message:  "Signature verified successfully",
		Offset:   offset,
	}, nil
}

// ExtractSignature locates the embedded signature in data by its prefix and
// returns its offset together with the full encoded signature bytes.
// The placeholder itself does not count as a signature.
func ExtractSignature(data []byte) (int64, []byte, error) {
	start := int64(bytes.Index(data, []byte(magic.Prefix)))
	if start == -1 {
		return 0, nil, newError(ErrTypeNoSignature, "file does not contain a signature", nil)
	}
	if start+magic.Length > int64(len(data)) {
		return 0, nil, newError(ErrTypeMalformedSignature,
			fmt.Sprintf("truncated signature at offset %d", start), nil)
	}

	encoded := data[start : start+magic.Length]
	if bytes.Equal(encoded, []byte(magic.Placeholder)) {
		return 0, nil, newError(ErrTypeNoSignature,
			"file contains an unsigned placeholder, not a signature", nil)
	}

	return start, encoded, nil
}

// fail builds the failure Result for a verification error.
func fail(err error) (Result, error) {
	return Result{
		Verified: false,
		Message:  fmt.Sprintf("Verification failed: %v", err),
	}, err
}
