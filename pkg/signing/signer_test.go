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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oreparaz/unisign/pkg/magic"
)

func generateTestKey(t *testing.T, dir string) string {
	t.Helper()
	keyPath := filepath.Join(dir, "id_ed25519")
	if _, err := GenerateKeypair(KeygenOptions{PrivateKeyPath: keyPath}); err != nil {
		t.Fatalf("GenerateKeypair failed: %v", err)
	}
	return keyPath
}

func writePlaceholderFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "artifact.bin")
	content := []byte("prefix bytes " + magic.Placeholder + " suffix bytes")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return path
}

func TestNewSigner_MissingInput(t *testing.T) {
	tmpDir := t.TempDir()
	keyPath := generateTestKey(t, tmpDir)

	_, err := NewSigner(SignerOptions{
		InputPath:      filepath.Join(tmpDir, "missing"),
		PrivateKeyPath: keyPath,
	})
	if err == nil {
		t.Error("expected error for missing input file, got nil")
	}
}

func TestNewSigner_MissingKey(t *testing.T) {
	tmpDir := t.TempDir()
	inputPath := writePlaceholderFile(t, tmpDir)

	_, err := NewSigner(SignerOptions{
		InputPath:      inputPath,
		PrivateKeyPath: filepath.Join(tmpDir, "nokey"),
	})
	if err == nil {
		t.Error("expected error for missing private key, got nil")
	}
}

func TestSigner_Sign(t *testing.T) {
	tmpDir := t.TempDir()
	keyPath := generateTestKey(t, tmpDir)
	inputPath := writePlaceholderFile(t, tmpDir)

	signer, err := NewSigner(SignerOptions{
		InputPath:      inputPath,
		PrivateKeyPath: keyPath,
	})
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	result, err := signer.Sign(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !result.Signed {
		t.Fatalf("result.Signed = false, message: %s", result.Message)
	}
	if result.OutputPath != inputPath+".signed" {
		t.Errorf("output path = %q, want %q", result.OutputPath, inputPath+".signed")
	}

	original, err := os.ReadFile(inputPath)
	if err != nil {
		t.Fatalf("reading original: %v", err)
	}
	signed, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("reading signed output: %v", err)
	}

	// In-place replacement: identical size, placeholder gone, prefix kept.
	if len(signed) != len(original) {
		t.Errorf("signed file size %d differs from original %d", len(signed), len(original))
	}
	if bytes.Contains(signed, []byte(magic.Placeholder)) {
		t.Error("placeholder still present in signed file")
	}
	if !bytes.Contains(signed, []byte(magic.Prefix)) {
		t.Error("signature prefix not found in signed file")
	}
}

func TestSigner_Sign_PreservesFileMode(t *testing.T) {
	tmpDir := t.TempDir()
	keyPath := generateTestKey(t, tmpDir)
	inputPath := writePlaceholderFile(t, tmpDir)
	if err := os.Chmod(inputPath, 0755); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	signer, err := NewSigner(SignerOptions{
		InputPath:      inputPath,
		PrivateKeyPath: keyPath,
	})
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}
	result, err := signer.Sign(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	info, err := os.Stat(result.OutputPath)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("output mode = %o, want 0755", info.Mode().Perm())
	}
}

func TestSigner_Sign_NoPlaceholder(t *testing.T) {
	tmpDir := t.TempDir()
	keyPath := generateTestKey(t, tmpDir)

	inputPath := filepath.Join(tmpDir, "plain.bin")
	if err := os.WriteFile(inputPath, []byte("no placeholder here"), 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}

	signer, err := NewSigner(SignerOptions{
		InputPath:      inputPath,
		PrivateKeyPath: keyPath,
	})
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	result, err := signer.Sign(context.Background())
	if err == nil {
		t.Fatal("expected error for artifact without placeholder, got nil")
	}
	if result.Signed {
		t.Error("result.Signed = true for failed signing")
	}
	if !strings.Contains(result.Message, "placeholder") {
		t.Errorf("result message %q does not mention the placeholder", result.Message)
	}
}

func TestSigner_Sign_MultiplePlaceholders(t *testing.T) {
	tmpDir := t.TempDir()
	keyPath := generateTestKey(t, tmpDir)

	inputPath := filepath.Join(tmpDir, "double.bin")
	content := []byte(magic.Placeholder + " and again " + magic.Placeholder)
	if err := os.WriteFile(inputPath, content, 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}

	signer, err := NewSigner(SignerOptions{
		InputPath:      inputPath,
		PrivateKeyPath: keyPath,
	})
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	if _, err := signer.Sign(context.Background()); err == nil {
		t.Error("expected error for multiple placeholders, got nil")
	}
}

func TestSigner_Sign_ExplicitOutputPath(t *testing.T) {
	tmpDir := t.TempDir()
	keyPath := generateTestKey(t, tmpDir)
	inputPath := writePlaceholderFile(t, tmpDir)
	outPath := filepath.Join(tmpDir, "custom.out")

	signer, err := NewSigner(SignerOptions{
		InputPath:      inputPath,
		OutputPath:     outPath,
		PrivateKeyPath: keyPath,
	})
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}
	result, err := signer.Sign(context.Background())
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if result.OutputPath != outPath {
		t.Errorf("output path = %q, want %q", result.OutputPath, outPath)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("signed output missing: %v", err)
	}
}
