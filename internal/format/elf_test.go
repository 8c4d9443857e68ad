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
	"encoding/binary"
	"errors"
	"testing"

	"github.com/oreparaz/unisign/pkg/magic"
)

// makeTestELF64 builds a minimal little-endian ELF64 executable with a
// .text section and a .shstrtab, valid for debug/elf.
func makeTestELF64(t *testing.T) []byte {
	t.Helper()

	le := binary.LittleEndian
	text := bytes.Repeat([]byte{0x90}, 16)           // 16 bytes of nop at offset 64
	shstrtab := []byte("\x00.text\x00.shstrtab\x00") // 17 bytes at offset 80
	shoff := uint64(104)                             // 80 + 17 padded to 8

	buf := make([]byte, 104+3*64)

	// e_ident
	copy(buf, []byte{0x7f, 'E', 'L', 'F', 2, 1, 1})
	le.PutUint16(buf[16:], 2)    // e_type: EXEC
	le.PutUint16(buf[18:], 0x3e) // e_machine: x86-64
	le.PutUint32(buf[20:], 1)    // e_version
	le.PutUint64(buf[40:], shoff)
	le.PutUint16(buf[52:], 64) // e_ehsize
	le.PutUint16(buf[58:], 64) // e_shentsize
	le.PutUint16(buf[60:], 3)  // e_shnum
	le.PutUint16(buf[62:], 2)  // e_shstrndx

	copy(buf[64:], text)
	copy(buf[80:], shstrtab)

	// section [1]: .text
	sh := buf[shoff+64:]
	le.PutUint32(sh[0:], 1)                        // sh_name
	le.PutUint32(sh[4:], uint32(elf.SHT_PROGBITS)) // sh_type
	le.PutUint64(sh[8:], uint64(elf.SHF_ALLOC|elf.SHF_EXECINSTR))
	le.PutUint64(sh[16:], 0x401000) // sh_addr
	le.PutUint64(sh[24:], 64)       // sh_offset
	le.PutUint64(sh[32:], uint64(len(text)))
	le.PutUint64(sh[48:], 16) // sh_addralign

	// section [2]: .shstrtab
	sh = buf[shoff+128:]
	le.PutUint32(sh[0:], 7) // sh_name
	le.PutUint32(sh[4:], uint32(elf.SHT_STRTAB))
	le.PutUint64(sh[24:], 80) // sh_offset
	le.PutUint64(sh[32:], uint64(len(shstrtab)))
	le.PutUint64(sh[48:], 1) // sh_addralign

	return buf
}

func TestInjectELF(t *testing.T) {
	data := makeTestELF64(t)

	output, err := InjectELF(data, magic.Placeholder, "")
	if err != nil {
		t.Fatalf("InjectELF failed: %v", err)
	}

	if !IsELF(output) {
		t.Fatal("output is not a valid ELF file")
	}
	if !bytes.Contains(output, []byte(magic.Placeholder)) {
		t.Fatal("placeholder not found in output")
	}

	ef, err := elf.NewFile(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("output is not parseable as ELF: %v", err)
	}
	defer ef.Close()

	sec := ef.Section(DefaultELFSection)
	if sec == nil {
		t.Fatalf("%s section not found", DefaultELFSection)
	}
	secData, err := sec.Data()
	if err != nil {
		t.Fatalf("reading section data: %v", err)
	}
	if string(secData) != magic.Placeholder {
		t.Errorf("section data = %q, want the placeholder", secData)
	}
	// The note carries no terminator: section size is the bare placeholder.
	if sec.Size != uint64(len(magic.Placeholder)) {
		t.Errorf("section size = %d, want %d", sec.Size, len(magic.Placeholder))
	}

	// All original sections must survive.
	origEf, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parsing original: %v", err)
	}
	defer origEf.Close()
	for _, origSec := range origEf.Sections {
		if origSec.Name == "" {
			continue
		}
		if ef.Section(origSec.Name) == nil {
			t.Errorf("original section %q missing from output", origSec.Name)
		}
	}

	// Section contents are untouched; only the ELF header fields pointing
	// at the rewritten section header table change.
	if !bytes.Equal(output[64:104], data[64:104]) {
		t.Error("original section contents modified by injection")
	}
}

func TestInjectELF_CustomSectionName(t *testing.T) {
	data := makeTestELF64(t)

	output, err := InjectELF(data, magic.Placeholder, ".unisign_custom")
	if err != nil {
		t.Fatalf("InjectELF failed: %v", err)
	}

	ef, err := elf.NewFile(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	defer ef.Close()

	if ef.Section(".unisign_custom") == nil {
		t.Fatal("custom section not found")
	}
}

func TestInjectELF_SectionAlreadyExists(t *testing.T) {
	data := makeTestELF64(t)

	once, err := InjectELF(data, magic.Placeholder, "")
	if err != nil {
		t.Fatalf("first injection failed: %v", err)
	}

	_, err = InjectELF(once, magic.Placeholder, "")
	if !errors.Is(err, ErrSectionExists) {
		t.Errorf("err = %v, want ErrSectionExists", err)
	}
}

func TestInjectELF_NotELF(t *testing.T) {
	_, err := InjectELF([]byte("definitely not an ELF binary"), magic.Placeholder, "")
	if !errors.Is(err, ErrNotELF) {
		t.Errorf("err = %v, want ErrNotELF", err)
	}
}
