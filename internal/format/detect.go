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

// Package format detects artifact file formats and injects the unisign
// placeholder into them without changing runtime behavior. Each format gets
// its own mechanism: ELF and Mach-O binaries receive a note section, PDFs an
// incremental update, and ZIP archives an archive comment.
package format

import (
	"encoding/binary"
	"path/filepath"
	"strings"
)

// Format identifies a supported artifact format.
type Format int

const (
	// FormatUnknown is an unrecognized file format.
	FormatUnknown Format = iota
	// FormatELF is an ELF executable or shared object.
	FormatELF
	// FormatMachO is a 64-bit Mach-O binary.
	FormatMachO
	// FormatPDF is a PDF document.
	FormatPDF
	// FormatZIP is a ZIP archive.
	FormatZIP
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case FormatELF:
		return "ELF"
	case FormatMachO:
		return "Mach-O"
	case FormatPDF:
		return "PDF"
	case FormatZIP:
		return "ZIP"
	default:
		return "unknown"
	}
}

// Mach-O 64-bit magic numbers, in both byte orders.
const (
	machoMagic64 = 0xfeedfacf
	machoCigam64 = 0xcffaedfe
)

// IsELF reports whether data starts with the ELF magic bytes.
func IsELF(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x7f && data[1] == 'E' && data[2] == 'L' && data[3] == 'F'
}

// IsMachO reports whether data starts with a 64-bit Mach-O magic number.
func IsMachO(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	magic := binary.LittleEndian.Uint32(data)
	return magic == machoMagic64 || magic == machoCigam64
}

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' && data[4] == '-'
}

// IsZIP reports whether data starts with the ZIP local file header magic.
func IsZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 'P' && data[1] == 'K' && data[2] == 0x03 && data[3] == 0x04
}

// Detect determines the format of an artifact from its leading bytes.
// The path is consulted as a fallback for ZIP files, whose magic is absent
// in empty archives and in files that have already been through injection.
func Detect(data []byte, path string) Format {
	switch {
	case IsELF(data):
		return FormatELF
	case IsMachO(data):
		return FormatMachO
	case IsPDF(data):
		return FormatPDF
	case IsZIP(data):
		return FormatZIP
	}

	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".zip") || strings.HasSuffix(name, ".zip.placeholder") {
		return FormatZIP
	}

	return FormatUnknown
}
