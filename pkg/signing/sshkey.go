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
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// ReadPrivateKey reads an Ed25519 SSH private key from a file and returns
// a signer. The key must be in OpenSSH format ("-----BEGIN OPENSSH PRIVATE
// KEY-----"). A non-empty passphrase is used to decrypt the key.
//
// Only Ed25519 keys are accepted: the encoded signature must be exactly 64
// bytes so it fits the placeholder without changing the file size.
func ReadPrivateKey(keyPath, passphrase string) (ssh.Signer, error) {
	keyBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key file: %w", err)
	}

	var signer ssh.Signer
	if passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(keyBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	if signer.PublicKey().Type() != ssh.KeyAlgoED25519 {
		return nil, fmt.Errorf("key is not an ed25519 key (got %s)", signer.PublicKey().Type())
	}

	return signer, nil
}

// ReadPublicKey reads an SSH public key in authorized_keys format from a
// file. Only Ed25519 keys are accepted.
func ReadPublicKey(keyPath string) (ssh.PublicKey, error) {
	keyBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key file: %w", err)
	}

	pubKey, _, _, _, err := ssh.ParseAuthorizedKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}

	if pubKey.Type() != ssh.KeyAlgoED25519 {
		return nil, fmt.Errorf("key is not an ed25519 key (got %s)", pubKey.Type())
	}

	return pubKey, nil
}
