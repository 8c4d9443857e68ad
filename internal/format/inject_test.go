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

package format

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/oreparaz/unisign/pkg/magic"
)

func TestInject_ELF(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "prog")
	if err := os.WriteFile(inputPath, makeTestELF64(t), 0755); err != nil {
		t.Fatal(err)
	}

	result, err := Inject(InjectOptions{
		InputPath:   inputPath,
		Placeholder: magic.Placeholder,
	})
	if err != nil {
		t.Fatalf("Inject failed: %v", err)
	}

	if result.Format != FormatELF {
		t.Errorf("format = %v, want ELF", result.Format)
	}
	if result.OutputPath != inputPath+".placeholder" {
		t.Errorf("output path = %q, want default %q", result.OutputPath, inputPath+".placeholder")
	}

	output, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(output, []byte(magic.Placeholder)) {
		t.Error("placeholder not found in output")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(result.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0755 {
			t.Errorf("output mode = %v, want 0755", info.Mode().Perm())
		}
	}
}

func TestInject_ZIPExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "archive.zip")
	outputPath := filepath.Join(dir, "out.zip")
	if err := os.WriteFile(inputPath, makeTestZIP(t, map[string]string{"a.txt": "a"}), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Inject(InjectOptions{
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Placeholder: magic.Placeholder,
	})
	if err != nil {
		t.Fatalf("Inject failed: %v", err)
	}
	if result.Format != FormatZIP {
		t.Errorf("format = %v, want ZIP", result.Format)
	}

	output, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	comment, err := ZIPComment(output)
	if err != nil {
		t.Fatal(err)
	}
	if comment != magic.Placeholder {
		t.Errorf("comment = %q, want the placeholder", comment)
	}
}

func TestInject_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(inputPath, []byte("just some text"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Inject(InjectOptions{InputPath: inputPath, Placeholder: magic.Placeholder})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestInject_MissingInput(t *testing.T) {
	_, err := Inject(InjectOptions{
		InputPath:   filepath.Join(t.TempDir(), "does-not-exist"),
		Placeholder: magic.Placeholder,
	})
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}
