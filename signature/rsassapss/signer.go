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

package rsassapss

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"math/big"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
)

func hashFunc(h HashType) (crypto.Hash, error) {
	switch h {
	case SHA256:
		return crypto.SHA256, nil
	case SHA384:
		return crypto.SHA384, nil
	case SHA512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("unsupported hash %v", h)
	}
}

type signer struct {
	privateKey *rsa.PrivateKey
	hash       crypto.Hash
	saltLength int
}

var _ clavis.Signer = (*signer)(nil)

// NewSigner returns a [clavis.Signer] for privateKey. The key material is
// checked for consistency here; a private key whose values do not match
// the public modulus fails with [clavis.ErrGeneralSecurity].
func NewSigner(privateKey *PrivateKey) (clavis.Signer, error) {
	params := privateKey.publicKey.parameters
	hash, err := hashFunc(params.SigHashType())
	if err != nil {
		return nil, fmt.Errorf("rsassapss.NewSigner: %v: %w", err, clavis.ErrInvalidParameters)
	}
	token := insecuresecretaccess.Token{}
	rsaKey := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).SetBytes(privateKey.publicKey.Modulus()),
			E: params.PublicExponent(),
		},
		D: new(big.Int).SetBytes(privateKey.D().Data(token)),
		Primes: []*big.Int{
			new(big.Int).SetBytes(privateKey.P().Data(token)),
			new(big.Int).SetBytes(privateKey.Q().Data(token)),
		},
	}
	if err := rsaKey.Validate(); err != nil {
		return nil, fmt.Errorf("rsassapss.NewSigner: inconsistent private key: %w", clavis.ErrGeneralSecurity)
	}
	rsaKey.Precompute()
	return &signer{
		privateKey: rsaKey,
		hash:       hash,
		saltLength: params.SaltLengthBytes(),
	}, nil
}

func (s *signer) Sign(data []byte) ([]byte, error) {
	h := s.hash.New()
	h.Write(data)
	return rsa.SignPSS(rand.Reader, s.privateKey, s.hash, h.Sum(nil), &rsa.PSSOptions{
		SaltLength: s.saltLength,
		Hash:       s.hash,
	})
}
