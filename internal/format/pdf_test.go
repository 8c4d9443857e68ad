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
	"fmt"
	"testing"

	"github.com/oreparaz/unisign/pkg/magic"
)

// makeTestPDF builds a minimal but structurally valid PDF with a catalog,
// a page tree, one page, a correct xref table, and a trailer.
func makeTestPDF(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 4)

	offsets[1] = buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = buf.Len()
	buf.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = buf.Len()
	buf.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n")

	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 4\n")
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	buf.WriteString("trailer\n<< /Size 4 /Root 1 0 R >>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes()
}

func TestInjectPDF(t *testing.T) {
	data := makeTestPDF(t)

	output, err := InjectPDF(data, magic.Placeholder)
	if err != nil {
		t.Fatalf("InjectPDF failed: %v", err)
	}

	if !IsPDF(output) {
		t.Fatal("output is not a valid PDF")
	}
	if !bytes.Contains(output, []byte(magic.Placeholder)) {
		t.Fatal("placeholder not found in output")
	}

	// Incremental update: original bytes are a strict prefix of the output.
	if !bytes.HasPrefix(output, data) {
		t.Error("original PDF bytes were modified")
	}

	// The update carries its own xref and trailer chained via /Prev.
	appended := output[len(data):]
	if bytes.Count(appended, []byte("startxref")) != 1 {
		t.Error("incremental update missing its startxref")
	}
	if !bytes.Contains(appended, []byte("/Prev")) {
		t.Error("incremental update trailer missing /Prev")
	}
	if !bytes.Contains(appended, []byte("/Root 1 0 R")) {
		t.Error("incremental update trailer does not carry the original /Root")
	}
	if !bytes.HasSuffix(appended, []byte("%%EOF\n")) {
		t.Error("output does not end with the EOF marker")
	}

	// The new object number continues the original numbering.
	if !bytes.Contains(appended, []byte("4 0 obj")) {
		t.Error("new object not numbered after the original /Size")
	}
}

func TestInjectPDF_Twice(t *testing.T) {
	data := makeTestPDF(t)

	once, err := InjectPDF(data, magic.Placeholder)
	if err != nil {
		t.Fatalf("first injection failed: %v", err)
	}

	// A second incremental update chains onto the first.
	twice, err := InjectPDF(once, magic.Placeholder)
	if err != nil {
		t.Fatalf("second injection failed: %v", err)
	}
	if !bytes.HasPrefix(twice, once) {
		t.Error("second update modified earlier bytes")
	}
	if !bytes.Contains(twice[len(once):], []byte("5 0 obj")) {
		t.Error("second update did not advance the object number")
	}
}

func TestInjectPDF_NotPDF(t *testing.T) {
	_, err := InjectPDF([]byte("plain text file"), magic.Placeholder)
	if !errors.Is(err, ErrNotPDF) {
		t.Errorf("err = %v, want ErrNotPDF", err)
	}
}

func TestInjectPDF_MissingXref(t *testing.T) {
	_, err := InjectPDF([]byte("%PDF-1.4\nno cross reference here"), magic.Placeholder)
	if !errors.Is(err, ErrPDFStructure) {
		t.Errorf("err = %v, want ErrPDFStructure", err)
	}
}
