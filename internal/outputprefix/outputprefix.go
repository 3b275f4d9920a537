// Copyright 2025 The Clavis Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package outputprefix computes the per-key prefix prepended to the output
// of prefixed keys.
package outputprefix

import "encoding/binary"

const (
	// Size is the length in bytes of a non-empty output prefix.
	Size = 5
	// startByte marks a prefixed output.
	startByte = byte(0x01)
)

// Prefixed returns the output prefix of a prefixed key with the given keyset
// ID: the start byte followed by the ID in big-endian order.
func Prefixed(keyID uint32) []byte {
	p := make([]byte, Size)
	p[0] = startByte
	binary.BigEndian.PutUint32(p[1:], keyID)
	return p
}
