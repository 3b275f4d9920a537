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

// Package secretdata provides an access-controlled wrapper for sensitive
// byte strings such as key material.
package secretdata

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"

	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
)

// Bytes wraps an immutable byte string that requires an
// [insecuresecretaccess.Token] to read.
type Bytes struct {
	data []byte
}

// NewBytesFromRand returns a Bytes value wrapping size bytes of
// cryptographically strong random data.
func NewBytesFromRand(size uint32) (Bytes, error) {
	b := Bytes{data: make([]byte, size)}
	if _, err := rand.Read(b.data); err != nil {
		return Bytes{}, err
	}
	return b, nil
}

// NewBytesFromData returns a Bytes value wrapping a copy of data.
func NewBytesFromData(data []byte, _ insecuresecretaccess.Token) Bytes {
	return Bytes{data: bytes.Clone(data)}
}

// Data returns a copy of the wrapped bytes.
func (b Bytes) Data(_ insecuresecretaccess.Token) []byte { return bytes.Clone(b.data) }

// Len returns the size of the wrapped bytes.
func (b Bytes) Len() int { return len(b.data) }

// Equal compares two Bytes values in constant time with respect to the
// contents; it returns immediately if the lengths differ.
func (b Bytes) Equal(other Bytes) bool {
	return subtle.ConstantTimeCompare(b.data, other.data) == 1
}
