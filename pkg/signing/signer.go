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

package signing

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oreparaz/unisign/pkg/logging"
	"github.com/oreparaz/unisign/pkg/magic"
	"github.com/oreparaz/unisign/pkg/utils"
)

// Result reports the outcome of a signing operation.
type Result struct {
	// Signed is true when the artifact was signed and written.
	Signed bool
	// Message is a human-readable summary of the outcome.
	Message string
	// OutputPath is the path of the signed artifact, when Signed is true.
	OutputPath string
}

// SignerOptions configures a Signer.
type SignerOptions struct {
	// InputPath is the artifact to sign. It must contain exactly one
	// placeholder occurrence.
	InputPath string
	// OutputPath is where the signed artifact is written.
	// Defaults to InputPath + ".signed".
	OutputPath string
	// PrivateKeyPath is the OpenSSH Ed25519 private key file.
	PrivateKeyPath string
	// Passphrase decrypts the private key when non-empty.
	Passphrase string
	// Logger receives progress output. Defaults to the package default.
	Logger logging.Logger
}

// Signer signs a single artifact in place by replacing its placeholder
// with the encoded signature.
type Signer struct {
	opts SignerOptions
	log  logging.Logger
}

// NewSigner validates the options and returns a Signer.
func NewSigner(opts SignerOptions) (*Signer, error) {
	if err := utils.ValidateFileExists("input file", opts.InputPath); err != nil {
		return nil, err
	}
	if err := utils.ValidateFileExists("private key", opts.PrivateKeyPath); err != nil {
		return nil, err
	}
	if opts.OutputPath == "" {
		opts.OutputPath = opts.InputPath + ".signed"
	}
	return &Signer{
		opts: opts,
		log:  logging.EnsureLogger(opts.Logger),
	}, nil
}

// Sign performs the complete signing flow.
//
// This orchestrates:
// 1. Reading the artifact and locating the single placeholder
// 2. Loading the private key
// 3. Signing the framed artifact bytes
// 4. Replacing the placeholder with the encoded signature
// 5. Writing the signed artifact to disk
func (s *Signer) Sign(_ context.Context) (Result, error) {
	s.log.Info("signing %s", filepath.Clean(s.opts.InputPath))
	s.log.Debug("  --key:        %s", s.opts.PrivateKeyPath)
	s.log.Debug("  --output:     %s", s.opts.OutputPath)
	s.log.Debug("  --passphrase: %s", utils.MaskSecret(s.opts.Passphrase))

	data, err := os.ReadFile(s.opts.InputPath)
	if err != nil {
		return failure("reading input file", err)
	}

	offset, err := magic.FindExactlyOne(data, []byte(magic.Placeholder))
	if err != nil {
		return failure("locating placeholder", err)
	}
	s.log.Debug("placeholder found at offset %d", offset)

	signer, err := ReadPrivateKey(s.opts.PrivateKeyPath, s.opts.Passphrase)
	if err != nil {
		return failure("reading private key", err)
	}

	signature, err := SignBuffer(signer, data, uint64(offset))
	if err != nil {
		return failure("signing artifact", err)
	}

	encoded := magic.Prefix + base64.StdEncoding.EncodeToString(signature)
	if len(encoded) != magic.Length {
		return failure("encoding signature", fmt.Errorf(
			"encoded signature length %d does not match placeholder length %d",
			len(encoded), magic.Length))
	}

	if err := magic.ReplaceAt(data, offset, []byte(magic.Placeholder), []byte(encoded)); err != nil {
		return failure("replacing placeholder", err)
	}

	// Signed binaries must stay executable, so carry over the input mode.
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.opts.InputPath); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(s.opts.OutputPath, data, mode); err != nil {
		return failure("writing signed file", err)
	}

	s.log.Info("signed %s -> %s", s.opts.InputPath, s.opts.OutputPath)
	return Result{
		Signed:     true,
		Message:    fmt.Sprintf("Successfully signed %s -> %s", s.opts.InputPath, s.opts.OutputPath),
		OutputPath: s.opts.OutputPath,
	}, nil
}

// failure builds the error Result and wrapped error for a failed step.
func failure(step string, err error) (Result, error) {
	return Result{
		Signed:  false,
		Message: fmt.Sprintf("Failed: %s: %v", step, err),
	}, fmt.Errorf("%s: %w", step, err)
}
