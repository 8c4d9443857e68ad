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
	"debug/elf"
	"errors"
	"fmt"
)

// DefaultELFSection is the section name used for the placeholder in ELF
// binaries when none is specified.
const DefaultELFSection = ".note.unisign"

var (
	// ErrNotELF is returned when the input is not a valid ELF binary.
	ErrNotELF = errors.New("file is not a valid ELF binary")
	// ErrELFUnsupported is returned for ELF classes this package cannot handle.
	ErrELFUnsupported = errors.New("unsupported ELF format")
	// ErrSectionExists is returned when the target section is already present.
	ErrSectionExists = errors.New("section already exists in binary")
	// ErrNoSectionHeaders is returned for ELF files without a section header table.
	ErrNoSectionHeaders = errors.New("ELF file has no section headers")
)

// InjectELF returns a copy of the ELF binary with the placeholder stored in
// a new non-loadable section (default ".note.unisign"). The binary runs
// identically to the original because the section is not part of any
// loadable segment.
//
// The approach:
//  1. Append the placeholder bytes after the existing file content
//  2. Append an extended copy of .shstrtab carrying the new section name
//  3. Rewrite the section header table at the new end of file
//  4. Patch the ELF header to point at the relocated table
func InjectELF(data []byte, placeholder, sectionName string) ([]byte, error) {
	if sectionName == "" {
		sectionName = DefaultELFSection
	}

	ef, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotELF, err)
	}
	defer ef.Close()

	if sec := ef.Section(sectionName); sec != nil {
		return nil, fmt.Errorf("%w: %s", ErrSectionExists, sectionName)
	}

	switch ef.Class {
	case elf.ELFCLASS64:
		return injectELF64(data, ef, placeholder, sectionName)
	case elf.ELFCLASS32:
		return injectELF32(data, ef, placeholder, sectionName)
	default:
		return nil, fmt.Errorf("%w: class %v", ErrELFUnsupported, ef.Class)
	}
}

func injectELF64(data []byte, ef *elf.File, placeholder, sectionName string) ([]byte, error) {
	bo := ef.ByteOrder

	// ELF64 header field offsets
	shoff := bo.Uint64(data[0x28:])
	shentsize := bo.Uint16(data[0x3A:])
	shnum := bo.Uint16(data[0x3C:])
	shstrndx := bo.Uint16(data[0x3E:])

	if shnum == 0 || int(shstrndx) >= int(shnum) {
		return nil, ErrNoSectionHeaders
	}
	if shentsize < 64 {
		return nil, fmt.Errorf("unexpected ELF64 section header entry size: %d", shentsize)
	}

	shstrtab, err := ef.Sections[shstrndx].Data()
	if err != nil {
		return nil, fmt.Errorf("reading .shstrtab: %w", err)
	}

	// Extended string table: original content, new name, NUL terminator.
	nameOffset := uint32(len(shstrtab))
	newShstrtab := make([]byte, len(shstrtab)+len(sectionName)+1)
	copy(newShstrtab, shstrtab)
	copy(newShstrtab[len(shstrtab):], sectionName)

	payload := []byte(placeholder)

	output := make([]byte, len(data))
	copy(output, data)
	output = padTo(output, 8)

	payloadOff := uint64(len(output))
	output = append(output, payload...)
	output = padTo(output, 8)

	newShstrtabOff := uint64(len(output))
	output = append(output, newShstrtab...)
	output = padTo(output, 8)

	newShoff := uint64(len(output))

	for i := uint16(0); i < shnum; i++ {
		off := shoff + uint64(i)*uint64(shentsize)
		entry := make([]byte, shentsize)
		copy(entry, data[off:off+uint64(shentsize)])

		// The .shstrtab header must point at the extended copy.
		if i == shstrndx {
			bo.PutUint64(entry[24:], newShstrtabOff)
			bo.PutUint64(entry[32:], uint64(len(newShstrtab)))
		}

		output = append(output, entry...)
	}

	newShdr := make([]byte, shentsize)
	bo.PutUint32(newShdr[0:], nameOffset)               // sh_name
	bo.PutUint32(newShdr[4:], uint32(elf.SHT_PROGBITS)) // sh_type
	bo.PutUint64(newShdr[24:], payloadOff)              // sh_offset
	bo.PutUint64(newShdr[32:], uint64(len(payload)))    // sh_size
	bo.PutUint64(newShdr[48:], 1)                       // sh_addralign
	output = append(output, newShdr...)

	bo.PutUint64(output[0x28:], newShoff) // e_shoff
	bo.PutUint16(output[0x3C:], shnum+1)  // e_shnum

	return output, nil
}

func injectELF32(data []byte, ef *elf.File, placeholder, sectionName string) ([]byte, error) {
	bo := ef.ByteOrder

	// ELF32 header field offsets
	shoff := bo.Uint32(data[0x20:])
	shentsize := bo.Uint16(data[0x2E:])
	shnum := bo.Uint16(data[0x30:])
	shstrndx := bo.Uint16(data[0x32:])

	if shnum == 0 || int(shstrndx) >= int(shnum) {
		return nil, ErrNoSectionHeaders
	}
	if shentsize < 40 {
		return nil, fmt.Errorf("unexpected ELF32 section header entry size: %d", shentsize)
	}

	shstrtab, err := ef.Sections[shstrndx].Data()
	if err != nil {
		return nil, fmt.Errorf("reading .shstrtab: %w", err)
	}

	nameOffset := uint32(len(shstrtab))
	newShstrtab := make([]byte, len(shstrtab)+len(sectionName)+1)
	copy(newShstrtab, shstrtab)
	copy(newShstrtab[len(shstrtab):], sectionName)

	payload := []byte(placeholder)

	output := make([]byte, len(data))
	copy(output, data)
	output = padTo(output, 4)

	payloadOff := uint32(len(output))
	output = append(output, payload...)
	output = padTo(output, 4)

	newShstrtabOff := uint32(len(output))
	output = append(output, newShstrtab...)
	output = padTo(output, 4)

	newShoff := uint32(len(output))

	for i := uint16(0); i < shnum; i++ {
		off := shoff + uint32(i)*uint32(shentsize)
		entry := make([]byte, shentsize)
		copy(entry, data[off:off+uint32(shentsize)])

		if i == shstrndx {
			bo.PutUint32(entry[16:], newShstrtabOff)
			bo.PutUint32(entry[20:], uint32(len(newShstrtab)))
		}

		output = append(output, entry...)
	}

	newShdr := make([]byte, shentsize)
	bo.PutUint32(newShdr[0:], nameOffset)               // sh_name
	bo.PutUint32(newShdr[4:], uint32(elf.SHT_PROGBITS)) // sh_type
	bo.PutUint32(newShdr[16:], payloadOff)              // sh_offset
	bo.PutUint32(newShdr[20:], uint32(len(payload)))    // sh_size
	bo.PutUint32(newShdr[32:], 1)                       // sh_addralign
	output = append(output, newShdr...)

	bo.PutUint32(output[0x20:], newShoff) // e_shoff
	bo.PutUint16(output[0x30:], shnum+1)  // e_shnum

	return output, nil
}

// padTo appends zero bytes until len(data) is a multiple of align.
func padTo(data []byte, align int) []byte {
	for len(data)%align != 0 {
		data = append(data, 0)
	}
	return data
}
