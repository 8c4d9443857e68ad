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
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/oreparaz/unisign/pkg/utils"
	"golang.org/x/crypto/ssh"
)

// KeygenOptions configures keypair generation.
type KeygenOptions struct {
	// PrivateKeyPath is the destination for the OpenSSH private key.
	// The public key is written next to it with a ".pub" suffix.
	PrivateKeyPath string
	// Passphrase optionally encrypts the private key.
	Passphrase string
	// Comment is embedded in the key files (conventionally user@host).
	Comment string
}

// GenerateKeypair creates a new Ed25519 keypair and writes it in OpenSSH
// format: the private key with mode 0600 and the authorized_keys-style
// public key with mode 0644. Existing files are never overwritten.
// Returns the path of the written public key.
func GenerateKeypair(opts KeygenOptions) (string, error) {
	if err := utils.ValidateNotExists("private key", opts.PrivateKeyPath); err != nil {
		return "", err
	}
	pubPath := opts.PrivateKeyPath + ".pub"
	if err := utils.ValidateNotExists("public key", pubPath); err != nil {
		return "", err
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generating ed25519 key: %w", err)
	}

	var block *pem.Block
	if opts.Passphrase != "" {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, opts.Comment, []byte(opts.Passphrase))
	} else {
		block, err = ssh.MarshalPrivateKey(priv, opts.Comment)
	}
	if err != nil {
		return "", fmt.Errorf("marshaling private key: %w", err)
	}

	if err := os.WriteFile(opts.PrivateKeyPath, pem.EncodeToMemory(block), 0600); err != nil {
		return "", fmt.Errorf("writing private key: %w", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("converting public key: %w", err)
	}

	pubBytes := ssh.MarshalAuthorizedKey(sshPub)
	if opts.Comment != "" {
		// MarshalAuthorizedKey ends with a newline; splice the comment in.
		pubBytes = append(pubBytes[:len(pubBytes)-1], []byte(" "+opts.Comment+"\n")...)
	}

	//nolint:gosec // public keys are world-readable
	if err := os.WriteFile(pubPath, pubBytes, 0644); err != nil {
		return "", fmt.Errorf("writing public key: %w", err)
	}

	return pubPath, nil
}
