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

// Package random provides utilities for random data.
package random

import (
	"crypto/rand"
	"encoding/binary"
)

// GetRandomBytes returns a slice of size cryptographically strong random
// bytes.
func GetRandomBytes(size uint32) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // out of randomness, should never happen
	}
	return buf
}

// GetRandomUint32 returns a cryptographically strong random uint32.
func GetRandomUint32() uint32 {
	return binary.BigEndian.Uint32(GetRandomBytes(4))
}
