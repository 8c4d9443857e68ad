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

package inspect

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oreparaz/unisign/pkg/magic"
	"github.com/oreparaz/unisign/pkg/signing"
)

func inspectFile(t *testing.T, path string) Report {
	t.Helper()

	inspector, err := NewInspector(InspectorOptions{InputPath: path})
	if err != nil {
		t.Fatalf("NewInspector failed: %v", err)
	}
	report, err := inspector.Inspect(context.Background())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	return report
}

func TestInspect_Placeholder(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("header " + magic.Placeholder + " footer")
	path := filepath.Join(tmpDir, "artifact.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	report := inspectFile(t, path)

	if report.State != StatePlaceholder {
		t.Errorf("state = %s, want placeholder", report.State)
	}
	if report.Offset != 7 {
		t.Errorf("offset = %d, want 7", report.Offset)
	}
	if report.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", report.Size, len(content))
	}
	if report.Format != "unknown" {
		t.Errorf("format = %s, want unknown", report.Format)
	}
	if report.Signature != "" {
		t.Errorf("signature = %q, want empty for placeholder state", report.Signature)
	}
	if !strings.HasPrefix(report.SHA256.String(), "sha256:") {
		t.Errorf("sha256 digest = %q", report.SHA256)
	}
	if len(report.BLAKE2B) != 64 {
		t.Errorf("blake2b digest length = %d, want 64 hex chars", len(report.BLAKE2B))
	}
}

func TestInspect_Signed(t *testing.T) {
	tmpDir := t.TempDir()

	keyPath := filepath.Join(tmpDir, "id_ed25519")
	if _, err := signing.GenerateKeypair(signing.KeygenOptions{PrivateKeyPath: keyPath}); err != nil {
		t.Fatalf("GenerateKeypair failed: %v", err)
	}

	inputPath := filepath.Join(tmpDir, "artifact.bin")
	if err := os.WriteFile(inputPath, []byte("data "+magic.Placeholder), 0644); err != nil {
		t.Fatal(err)
	}

	signer, err := signing.NewSigner(signing.SignerOptions{
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

	report := inspectFile(t, result.OutputPath)

	if report.State != StateSigned {
		t.Errorf("state = %s, want signed", report.State)
	}
	if report.Offset != 5 {
		t.Errorf("offset = %d, want 5", report.Offset)
	}
	if len(report.Signature) != magic.Length {
		t.Errorf("signature length = %d, want %d", len(report.Signature), magic.Length)
	}
	if !strings.HasPrefix(report.Signature, magic.Prefix) {
		t.Errorf("signature %q does not start with prefix", report.Signature)
	}

	// The rendered report masks the signature rather than printing it whole.
	rendered := report.String()
	if strings.Contains(rendered, report.Signature) {
		t.Error("rendered report contains the full signature")
	}
	if !strings.Contains(rendered, "state:     signed") {
		t.Errorf("rendered report missing state line:\n%s", rendered)
	}
}

func TestInspect_None(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "plain.txt")
	if err := os.WriteFile(path, []byte("nothing unisign about this file"), 0644); err != nil {
		t.Fatal(err)
	}

	report := inspectFile(t, path)

	if report.State != StateNone {
		t.Errorf("state = %s, want none", report.State)
	}
	if report.Signature != "" {
		t.Errorf("signature = %q, want empty", report.Signature)
	}
}

func TestInspect_Malformed(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "truncated.bin")
	if err := os.WriteFile(path, []byte("stuff "+magic.Prefix+"tooshort"), 0644); err != nil {
		t.Fatal(err)
	}

	report := inspectFile(t, path)

	if report.State != StateMalformed {
		t.Errorf("state = %s, want malformed", report.State)
	}
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := NewInspector(InspectorOptions{
		InputPath: filepath.Join(t.TempDir(), "does-not-exist"),
	})
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}
