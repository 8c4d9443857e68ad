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
	"debug/macho"
	"errors"
	"fmt"
	"math"
)

// Mach-O note segment and section names. Apple tooling addresses sections
// as "segment,section", so the placeholder lives at __NOTE,__unisign.
const (
	// DefaultMachOSegment is the segment holding the placeholder section.
	DefaultMachOSegment = "__NOTE"
	// DefaultMachOSection is the section name used for the placeholder.
	DefaultMachOSection = "__unisign"
)

const (
	lcSegment64          = 0x19
	segmentCommand64Size = 72
	section64Size        = 80
	machoHeader64Size    = 32
	vmProtRead           = 0x01
)

var (
	// ErrNotMachO is returned when the input is not a valid Mach-O binary.
	ErrNotMachO = errors.New("file is not a valid Mach-O binary")
	// ErrMachOUnsupported is returned for Mach-O variants this package cannot handle.
	ErrMachOUnsupported = errors.New("unsupported Mach-O format")
	// ErrMachONoSpace is returned when the load command area has no room for
	// another segment command.
	ErrMachONoSpace = errors.New("no space in Mach-O load command area")
)

// InjectMachO returns a copy of the 64-bit Mach-O binary with the
// placeholder stored in a new section (default __NOTE,__unisign). The
// segment has no VM mapping, so the binary runs identically to the original.
//
// A new LC_SEGMENT_64 load command is written into the padding that linkers
// leave between the last load command and the first section contents. The
// placeholder bytes themselves are appended at the end of the file.
func InjectMachO(data []byte, placeholder, sectionName string) ([]byte, error) {
	if sectionName == "" {
		sectionName = DefaultMachOSection
	}
	if len(sectionName) > 16 {
		return nil, fmt.Errorf("%w: section name %q longer than 16 bytes", ErrMachOUnsupported, sectionName)
	}

	mf, err := macho.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMachO, err)
	}
	defer mf.Close()

	if mf.Magic != macho.Magic64 {
		return nil, fmt.Errorf("%w: only 64-bit Mach-O is supported", ErrMachOUnsupported)
	}

	for _, sec := range mf.Sections {
		if sec.Name == sectionName && sec.Seg == DefaultMachOSegment {
			return nil, fmt.Errorf("%w: %s,%s", ErrSectionExists, DefaultMachOSegment, sectionName)
		}
	}

	bo := mf.ByteOrder

	ncmds := bo.Uint32(data[16:])
	sizeofcmds := bo.Uint32(data[20:])
	cmdsEnd := uint64(machoHeader64Size) + uint64(sizeofcmds)
	newCmdSize := uint64(segmentCommand64Size + section64Size)

	// The new load command goes into the gap between the end of the
	// existing commands and the first byte of file content.
	if cmdsEnd+newCmdSize > firstContentOffset(mf, uint64(len(data))) {
		return nil, ErrMachONoSpace
	}

	payload := []byte(placeholder)

	// The payload lands 8-byte aligned at the end of the file; its offset
	// must fit the 32-bit section offset field.
	payloadOff := (uint64(len(data)) + 7) &^ 7
	if payloadOff > math.MaxUint32 {
		return nil, fmt.Errorf("%w: section offset %d does not fit in 32 bits", ErrMachOUnsupported, payloadOff)
	}

	output := make([]byte, len(data))
	copy(output, data)
	output = padTo(output, 8)
	output = append(output, payload...)

	cmd := make([]byte, newCmdSize)
	bo.PutUint32(cmd[0:], lcSegment64)           // cmd
	bo.PutUint32(cmd[4:], uint32(newCmdSize))    // cmdsize
	copy(cmd[8:24], DefaultMachOSegment)         // segname
	bo.PutUint64(cmd[24:], 0)                    // vmaddr
	bo.PutUint64(cmd[32:], 0)                    // vmsize (not mapped)
	bo.PutUint64(cmd[40:], payloadOff)           // fileoff
	bo.PutUint64(cmd[48:], uint64(len(payload))) // filesize
	bo.PutUint32(cmd[56:], vmProtRead)           // maxprot
	bo.PutUint32(cmd[60:], vmProtRead)           // initprot
	bo.PutUint32(cmd[64:], 1)                    // nsects
	bo.PutUint32(cmd[68:], 0)                    // flags

	sect := cmd[segmentCommand64Size:]
	copy(sect[0:16], sectionName)                 // sectname
	copy(sect[16:32], DefaultMachOSegment)        // segname
	bo.PutUint64(sect[32:], 0)                    // addr
	bo.PutUint64(sect[40:], uint64(len(payload))) // size
	bo.PutUint32(sect[48:], uint32(payloadOff))   // offset
	// align, reloff, nreloc, flags, reserved1..3 stay zero

	copy(output[cmdsEnd:], cmd)
	bo.PutUint32(output[16:], ncmds+1)
	bo.PutUint32(output[20:], sizeofcmds+uint32(newCmdSize))

	return output, nil
}

// firstContentOffset returns the lowest file offset holding section or
// segment contents, bounding how far the load command area may grow.
func firstContentOffset(mf *macho.File, fileSize uint64) uint64 {
	first := fileSize
	for _, sec := range mf.Sections {
		if sec.Offset > 0 && uint64(sec.Offset) < first {
			first = uint64(sec.Offset)
		}
	}
	for _, load := range mf.Loads {
		seg, ok := load.(*macho.Segment)
		if !ok {
			continue
		}
		if seg.Filesz > 0 && seg.Offset > 0 && seg.Offset < first {
			first = seg.Offset
		}
	}
	return first
}
