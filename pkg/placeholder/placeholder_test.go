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

package placeholder

import (
	"testing"

	"github.com/oreparaz/unisign/pkg/magic"
)

func TestEmbed(t *testing.T) {
	if got := Embed(); got != magic.Placeholder {
		t.Errorf("Embed() = %q, want the placeholder", got)
	}
}

func TestLen(t *testing.T) {
	if got := Len(); got != magic.Length {
		t.Errorf("Len() = %d, want %d", got, magic.Length)
	}
}
