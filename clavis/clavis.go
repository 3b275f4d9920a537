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

// Package clavis defines the primitive interfaces implemented by this
// library.
//
// Primitives are obtained from a finalized [keyset.Handle] through the
// factory functions of the per-primitive packages (signature, aead, mac,
// jwt). A primitive obtained that way transparently uses every enabled key
// of the keyset, which makes key rotation invisible to callers.
package clavis

import "context"

// Signer computes digital signatures.
type Signer interface {
	// Sign computes a signature for data.
	Sign(data []byte) ([]byte, error)
}

// Verifier verifies digital signatures.
type Verifier interface {
	// Verify returns nil if signature is a valid signature of data.
	Verify(signature, data []byte) error
}

// AEAD is an authenticated encryption with associated data primitive.
//
// Implementations guarantee confidentiality and integrity of the plaintext
// and integrity of the associated data.
type AEAD interface {
	// Encrypt encrypts plaintext with associatedData.
	Encrypt(plaintext, associatedData []byte) ([]byte, error)
	// Decrypt decrypts ciphertext with associatedData.
	Decrypt(ciphertext, associatedData []byte) ([]byte, error)
}

// AEADWithContext is an AEAD whose operations may perform I/O, for example
// against a remote key-management service, and therefore take a
// [context.Context].
type AEADWithContext interface {
	EncryptWithContext(ctx context.Context, plaintext, associatedData []byte) ([]byte, error)
	DecryptWithContext(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error)
}

// MAC computes and verifies message authentication codes.
type MAC interface {
	// ComputeMAC computes an authentication tag for data.
	ComputeMAC(data []byte) ([]byte, error)
	// VerifyMAC returns nil if mac is a valid authentication tag for data.
	VerifyMAC(mac, data []byte) error
}
