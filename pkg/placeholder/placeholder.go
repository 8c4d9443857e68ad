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

// Package placeholder embeds the unisign placeholder into Go binaries at
// build time, so they can be signed in place without a separate injection
// step.
//
// Import the package and call Embed from main:
//
//	func main() {
//		_ = placeholder.Embed()
//		...
//	}
//
// The call creates a reachable reference, which keeps the linker's dead
// code elimination from dropping the placeholder bytes. C programs get the
// same effect with a section attribute; see example/c/hello.c.
package placeholder

import "github.com/oreparaz/unisign/pkg/magic"

// value is a variable rather than a constant so the placeholder occupies
// its own addressable data, ready for in-place replacement.
var value = magic.Placeholder

// Embed returns the placeholder and anchors its bytes in the binary.
//
//go:noinline
func Embed() string {
	return value
}

// Len returns the placeholder length, which is also the length of every
// encoded signature that replaces it.
func Len() int {
	return len(value)
}
