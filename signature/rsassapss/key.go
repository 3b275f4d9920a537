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
	"bytes"
	"fmt"
	"math/big"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

// PublicKey is an RSA-SSA-PSS public key.
type PublicKey struct {
	parameters    *Parameters
	modulus       []byte
	idRequirement uint32
}

var _ key.Key = (*PublicKey)(nil)

// NewPublicKey creates a public key from the big-endian modulus bytes.
//
// idRequirement is the keyset ID the key must carry; it must be zero if
// the parameters have no ID requirement.
func NewPublicKey(modulus []byte, idRequirement uint32, parameters *Parameters) (*PublicKey, error) {
	if parameters == nil {
		return nil, fmt.Errorf("rsassapss.NewPublicKey: nil parameters: %w", clavis.ErrInvalidParameters)
	}
	if !parameters.HasIDRequirement() && idRequirement != 0 {
		return nil, fmt.Errorf("rsassapss.NewPublicKey: ID %d given for parameters without ID requirement: %w", idRequirement, clavis.ErrInvalidParameters)
	}
	if got := new(big.Int).SetBytes(modulus).BitLen(); got != parameters.ModulusSizeBits() {
		return nil, fmt.Errorf("rsassapss.NewPublicKey: modulus has %d bits, parameters want %d: %w", got, parameters.ModulusSizeBits(), clavis.ErrInvalidParameters)
	}
	return &PublicKey{
		parameters:    parameters,
		modulus:       bytes.Clone(modulus),
		idRequirement: idRequirement,
	}, nil
}

// Modulus returns the big-endian modulus bytes.
func (k *PublicKey) Modulus() []byte { return bytes.Clone(k.modulus) }

// Parameters returns the parameters of the key.
func (k *PublicKey) Parameters() key.Parameters { return k.parameters }

// IDRequirement returns the required keyset ID of the key.
func (k *PublicKey) IDRequirement() (uint32, bool) {
	return k.idRequirement, k.parameters.HasIDRequirement()
}

// Equal compares k with other.
func (k *PublicKey) Equal(other key.Key) bool {
	o, ok := other.(*PublicKey)
	return ok && k.parameters.Equal(o.parameters) &&
		bytes.Equal(k.modulus, o.modulus) &&
		k.idRequirement == o.idRequirement
}

// PrivateKeyValues holds the secret values of an RSA private key for
// [NewPrivateKey]. D is the private exponent, P and Q the prime factors,
// all big-endian.
type PrivateKeyValues struct {
	P, Q secretdata.Bytes
	D    secretdata.Bytes
}

// PrivateKey is an RSA-SSA-PSS private key.
type PrivateKey struct {
	publicKey *PublicKey
	p, q, d   secretdata.Bytes
	// CRT values derived from p, q and d at construction.
	dp, dq, qInv secretdata.Bytes
}

var _ key.Key = (*PrivateKey)(nil)

// NewPrivateKey creates a private key from its public key and secret
// values.
//
// The CRT values dP, dQ and qInv are derived here. Consistency of the
// secret values with the public modulus is deliberately not checked at
// construction; a mismatching key is rejected when the signer primitive
// is built.
func NewPrivateKey(publicKey *PublicKey, values PrivateKeyValues) (*PrivateKey, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("rsassapss.NewPrivateKey: nil public key: %w", clavis.ErrInvalidParameters)
	}
	if values.P.Len() == 0 || values.Q.Len() == 0 || values.D.Len() == 0 {
		return nil, fmt.Errorf("rsassapss.NewPrivateKey: empty private key value: %w", clavis.ErrInvalidParameters)
	}
	token := insecuresecretaccess.Token{}
	p := new(big.Int).SetBytes(values.P.Data(token))
	q := new(big.Int).SetBytes(values.Q.Data(token))
	d := new(big.Int).SetBytes(values.D.Data(token))
	one := big.NewInt(1)
	dp := new(big.Int).Mod(d, new(big.Int).Sub(p, one))
	dq := new(big.Int).Mod(d, new(big.Int).Sub(q, one))
	qInv := new(big.Int).ModInverse(q, p)
	if qInv == nil {
		return nil, fmt.Errorf("rsassapss.NewPrivateKey: q is not invertible modulo p: %w", clavis.ErrInvalidParameters)
	}
	return &PrivateKey{
		publicKey: publicKey,
		p:         values.P,
		q:         values.Q,
		d:         values.D,
		dp:        secretdata.NewBytesFromData(dp.Bytes(), token),
		dq:        secretdata.NewBytesFromData(dq.Bytes(), token),
		qInv:      secretdata.NewBytesFromData(qInv.Bytes(), token),
	}, nil
}

// PublicKey returns the public key of the private key.
func (k *PrivateKey) PublicKey() (key.Key, error) { return k.publicKey, nil }

// P returns the first prime factor.
func (k *PrivateKey) P() secretdata.Bytes { return k.p }

// Q returns the second prime factor.
func (k *PrivateKey) Q() secretdata.Bytes { return k.q }

// D returns the private exponent.
func (k *PrivateKey) D() secretdata.Bytes { return k.d }

// DP returns d mod (p - 1).
func (k *PrivateKey) DP() secretdata.Bytes { return k.dp }

// DQ returns d mod (q - 1).
func (k *PrivateKey) DQ() secretdata.Bytes { return k.dq }

// QInv returns the inverse of q modulo p.
func (k *PrivateKey) QInv() secretdata.Bytes { return k.qInv }

// Parameters returns the parameters of the key.
func (k *PrivateKey) Parameters() key.Parameters { return k.publicKey.Parameters() }

// IDRequirement returns the required keyset ID of the key.
func (k *PrivateKey) IDRequirement() (uint32, bool) { return k.publicKey.IDRequirement() }

// Equal compares k with other.
func (k *PrivateKey) Equal(other key.Key) bool {
	o, ok := other.(*PrivateKey)
	return ok && k.publicKey.Equal(o.publicKey) &&
		k.p.Equal(o.p) && k.q.Equal(o.q) && k.d.Equal(o.d)
}
