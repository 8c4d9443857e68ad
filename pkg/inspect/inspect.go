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

// Package inspect reports the signing state of an artifact without
// verifying anything: format, placeholder or signature presence, offsets,
// and content digests.
package inspect

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
	"golang.org/x/crypto/blake2b"

	"github.com/oreparaz/unisign/internal/format"
	"github.com/oreparaz/unisign/pkg/logging"
	"github.com/oreparaz/unisign/pkg/magic"
	"github.com/oreparaz/unisign/pkg/utils"
)

// State describes what unisign content an artifact carries.
type State string

const (
	// StateNone means the artifact carries neither placeholder nor signature.
	StateNone State = "none"
	// StatePlaceholder means the artifact carries an unsigned placeholder.
	StatePlaceholder State = "placeholder"
	// StateSigned means the artifact carries an embedded signature.
	StateSigned State = "signed"
	// StateMalformed means prefix bytes are present but the content is not a
	// well-formed placeholder or signature.
	StateMalformed State = "malformed"
)

// Report describes an inspected artifact.
type Report struct {
	// Path is the inspected file.
	Path string `json:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// Format is the detected artifact format name.
	Format string `json:"format"`
	// State is the signing state of the artifact.
	State State `json:"state"`
	// Offset is the byte offset of the placeholder or signature.
	// Only meaningful when State is placeholder or signed.
	Offset int64 `json:"offset,omitempty"`
	// Signature is the embedded encoded signature, when present.
	Signature string `json:"signature,omitempty"`
	// SHA256 is the OCI-style digest of the file contents.
	SHA256 digest.Digest `json:"sha256"`
	// BLAKE2B is the hex BLAKE2b-256 digest of the file contents.
	BLAKE2B string `json:"blake2b"`
}

// String renders the report as aligned key/value lines.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "path:      %s\n", r.Path)
	fmt.Fprintf(&b, "size:      %d\n", r.Size)
	fmt.Fprintf(&b, "format:    %s\n", r.Format)
	fmt.Fprintf(&b, "state:     %s\n", r.State)
	if r.State == StatePlaceholder || r.State == StateSigned {
		fmt.Fprintf(&b, "offset:    %d\n", r.Offset)
	}
	if r.Signature != "" {
		fmt.Fprintf(&b, "signature: %s\n", utils.MaskSecret(r.Signature))
	}
	fmt.Fprintf(&b, "sha256:    %s\n", r.SHA256)
	fmt.Fprintf(&b, "blake2b:   %s", r.BLAKE2B)
	return b.String()
}

// InspectorOptions configures an Inspector.
type InspectorOptions struct {
	// InputPath is the artifact to inspect.
	InputPath string
	// Logger receives progress output. Defaults to the package default.
	Logger logging.Logger
}

// Inspector examines a single artifact.
type Inspector struct {
	opts InspectorOptions
	log  logging.Logger
}

// NewInspector validates the options and returns an Inspector.
func NewInspector(opts InspectorOptions) (*Inspector, error) {
	if err := utils.ValidateFileExists("input file", opts.InputPath); err != nil {
		return nil, err
	}
	return &Inspector{
		opts: opts,
		log:  logging.EnsureLogger(opts.Logger),
	}, nil
}

// Inspect reads the artifact and builds a Report.
func (i *Inspector) Inspect(_ context.Context) (Report, error) {
	i.log.Debug("inspecting %s", i.opts.InputPath)

	data, err := os.ReadFile(i.opts.InputPath)
	if err != nil {
		return Report{}, fmt.Errorf("reading input file: %w", err)
	}

	sum := blake2b.Sum256(data)

	report := Report{
		Path:    i.opts.InputPath,
		Size:    int64(len(data)),
		Format:  format.Detect(data, i.opts.InputPath).String(),
		SHA256:  digest.SHA256.FromBytes(data),
		BLAKE2B: hex.EncodeToString(sum[:]),
	}
	report.State, report.Offset, report.Signature = classify(data)

	return report, nil
}

// classify determines the signing state of the raw artifact bytes.
func classify(data []byte) (State, int64, string) {
	start := int64(bytes.Index(data, []byte(magic.Prefix)))
	if start == -1 {
		return StateNone, 0, ""
	}
	if start+magic.Length > int64(len(data)) {
		return StateMalformed, start, ""
	}

	content := data[start : start+magic.Length]
	if bytes.Equal(content, []byte(magic.Placeholder)) {
		return StatePlaceholder, start, ""
	}
	if _, err := base64.StdEncoding.DecodeString(string(content[len(magic.Prefix):])); err != nil {
		return StateMalformed, start, ""
	}

	return StateSigned, start, string(content)
}
