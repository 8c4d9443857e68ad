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

// Package signing implements in-place artifact signing with OpenSSH Ed25519
// keys. The artifact must contain exactly one copy of the unisign
// placeholder; the signature covers the whole artifact (placeholder
// included) framed by a fixed binary header, and then replaces the
// placeholder byte for byte.
package signing

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// FrameMagic identifies unisign framed messages: "UNISIGN" in ASCII,
// read as a big-endian uint64.
const FrameMagic uint64 = 0x554E495349474E

// frameHeaderSize is the encoded size of FrameHeader: three uint64 fields.
const frameHeaderSize = 24

// FrameHeader is the binary header prepended to a message before signing.
// Binding the placeholder offset into the signed bytes prevents a signature
// from being relocated to a different placeholder position in the file.
type FrameHeader struct {
	// Magic is the fixed FrameMagic value.
	Magic uint64
	// Length is the length of the framed message in bytes.
	Length uint64
	// Offset is the placeholder offset the signature is bound to.
	Offset uint64
}

// EncodeFrame returns the header followed by the message, with all header
// fields encoded big-endian.
func EncodeFrame(message []byte, offset uint64) []byte {
	header := FrameHeader{
		Magic:  FrameMagic,
		Length: uint64(len(message)),
		Offset: offset,
	}

	buf := make([]byte, frameHeaderSize+len(message))
	binary.BigEndian.PutUint64(buf[0:], header.Magic)
	binary.BigEndian.PutUint64(buf[8:], header.Length)
	binary.BigEndian.PutUint64(buf[16:], header.Offset)
	copy(buf[frameHeaderSize:], message)

	return buf
}

// SignBuffer signs the framed message using an SSH signer and returns the
// raw signature blob (64 bytes for Ed25519).
func SignBuffer(signer ssh.Signer, message []byte, offset uint64) ([]byte, error) {
	buf := EncodeFrame(message, offset)

	signature, err := signer.Sign(nil, buf)
	if err != nil {
		return nil, fmt.Errorf("signing buffer: %w", err)
	}

	return signature.Blob, nil
}

// VerifyBuffer verifies a raw signature blob against the framed message.
// Returns nil when the signature is valid.
func VerifyBuffer(publicKey ssh.PublicKey, message []byte, offset uint64, signature []byte) error {
	buf := EncodeFrame(message, offset)

	sig := &ssh.Signature{
		Format: publicKey.Type(),
		Blob:   signature,
	}

	if err := publicKey.Verify(buf, sig); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}
