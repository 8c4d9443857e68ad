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

// Minimal Go program carrying the unisign placeholder, the Go counterpart
// of c/hello.c. Build it, then sign the binary in place:
//
//	go build -o hello .
//	unisign sign --key ~/.ssh/id_ed25519 hello
package main

import (
	"fmt"

	"github.com/oreparaz/unisign/pkg/placeholder"
)

func main() {
	_ = placeholder.Embed()
	fmt.Println("Hello, world!")
}
