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
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrZipCorrupted is returned when the archive cannot be parsed.
	ErrZipCorrupted = errors.New("zip file is corrupted or invalid")
	// ErrZipCommentTooLarge is returned when the placeholder exceeds the
	// ZIP format's 65535-byte comment limit.
	ErrZipCommentTooLarge = errors.New("comment is too large for ZIP format (max 65535 bytes)")
)

// InjectZIP returns a copy of the archive with the placeholder stored as
// the archive comment. The ZIP specification stores comments uncompressed,
// so the placeholder stays byte-addressable for in-place signing, and the
// archived contents remain intact.
func InjectZIP(data []byte, placeholder string) ([]byte, error) {
	if len(placeholder) > 65535 {
		return nil, ErrZipCommentTooLarge
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrZipCorrupted, err)
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	for _, file := range reader.File {
		header := &zip.FileHeader{
			Name:               file.Name,
			Comment:            file.Comment,
			Method:             file.Method,
			Modified:           file.Modified,
			CRC32:              file.CRC32,
			CompressedSize64:   file.CompressedSize64,
			UncompressedSize64: file.UncompressedSize64,
			Extra:              file.Extra,
		}
		if err := copyZipEntry(writer, file, header); err != nil {
			return nil, err
		}
	}

	// Comments are stored in clear text at the end of the archive.
	if err := writer.SetComment(placeholder); err != nil {
		return nil, fmt.Errorf("setting ZIP comment: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing ZIP writer: %w", err)
	}

	return output.Bytes(), nil
}

// copyZipEntry copies one entry from the source archive into the writer.
func copyZipEntry(writer *zip.Writer, srcFile *zip.File, header *zip.FileHeader) error {
	w, err := writer.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("creating entry %q: %w", header.Name, err)
	}

	r, err := srcFile.Open()
	if err != nil {
		return fmt.Errorf("opening entry %q: %w", srcFile.Name, err)
	}
	defer r.Close()

	if _, err = io.Copy(w, r); err != nil {
		return fmt.Errorf("copying entry %q: %w", srcFile.Name, err)
	}

	return nil
}

// ZIPComment returns the archive comment of a ZIP file.
func ZIPComment(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrZipCorrupted, err)
	}
	return reader.Comment, nil
}
