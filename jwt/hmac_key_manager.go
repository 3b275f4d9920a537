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

package jwt

import (
	"errors"
	"fmt"

	jwtgo "github.com/golang-jwt/jwt/v5"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/fips"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/registry"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

const hmacTypeID = "type.clavis.dev/JwtHmacKey"

func signingMethod(a Algorithm) (*jwtgo.SigningMethodHMAC, error) {
	switch a {
	case HS256:
		return jwtgo.SigningMethodHS256, nil
	case HS384:
		return jwtgo.SigningMethodHS384, nil
	case HS512:
		return jwtgo.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("jwt: unsupported algorithm %v", a)
	}
}

// hmacMAC implements macWithKID for one HMAC key.
type hmacMAC struct {
	method   *jwtgo.SigningMethodHMAC
	keyBytes []byte
}

var _ macWithKID = (*hmacMAC)(nil)

func newHMACMAC(k *HMACKey) (*hmacMAC, error) {
	method, err := signingMethod(k.parameters.Algorithm())
	if err != nil {
		return nil, err
	}
	return &hmacMAC{
		method:   method,
		keyBytes: k.KeyBytes().Data(insecuresecretaccess.Token{}),
	}, nil
}

func (m *hmacMAC) ComputeMACAndEncodeWithKID(rawJWT *RawJWT, kid *string) (string, error) {
	if rawJWT == nil {
		return "", fmt.Errorf("jwt: nil token")
	}
	token := jwtgo.NewWithClaims(m.method, jwtgo.MapClaims(rawJWT.claims))
	// golang-jwt writes "typ": "JWT" by default; the header is only
	// emitted when the token sets it.
	delete(token.Header, "typ")
	if rawJWT.typeHeader != nil {
		token.Header["typ"] = *rawJWT.typeHeader
	}
	if kid != nil {
		token.Header["kid"] = *kid
	}
	return token.SignedString(m.keyBytes)
}

func (m *hmacMAC) VerifyMACAndDecodeWithKID(compact string, validator *Validator, kid *string) (*VerifiedJWT, error) {
	if validator == nil {
		return nil, fmt.Errorf("jwt: nil validator")
	}
	parser := jwtgo.NewParser(
		jwtgo.WithValidMethods([]string{m.method.Alg()}),
		// Claim validation is done by our validator below, with its own
		// skew and expectation semantics.
		jwtgo.WithoutClaimsValidation(),
	)
	claims := jwtgo.MapClaims{}
	token, err := parser.ParseWithClaims(compact, claims, func(t *jwtgo.Token) (any, error) {
		if kid != nil {
			tokenKID, ok := t.Header["kid"].(string)
			if !ok || tokenKID != *kid {
				return nil, fmt.Errorf("jwt: token kid does not match the key")
			}
		}
		return m.keyBytes, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwt: %w", err)
	}
	var typeHeader *string
	if typ, ok := token.Header["typ"].(string); ok {
		typeHeader = &typ
	}
	raw := newRawJWTFromClaims(map[string]any(claims), typeHeader)
	if err := validator.Validate(raw); err != nil {
		return nil, err
	}
	return newVerifiedJWT(raw), nil
}

type hmacKeyManager struct{}

var _ registry.KeyManager = (*hmacKeyManager)(nil)

func (hmacKeyManager) TypeID() string          { return hmacTypeID }
func (hmacKeyManager) FIPSStatus() fips.Status { return fips.StatusValidated }

func (hmacKeyManager) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	hmacParams, ok := params.(*HMACParameters)
	if !ok {
		return nil, fmt.Errorf("jwt: unexpected parameters type %T: %w", params, clavis.ErrInvalidParameters)
	}
	keyBytes, err := secretdata.NewBytesFromRand(uint32(hmacParams.KeySizeBytes()))
	if err != nil {
		return nil, err
	}
	if !hmacParams.HasIDRequirement() {
		idRequirement = 0
	}
	return NewHMACKey(keyBytes, idRequirement, hmacParams)
}

func (hmacKeyManager) Primitive(k key.Key) (any, error) {
	hmacKey, ok := k.(*HMACKey)
	if !ok {
		return nil, fmt.Errorf("jwt: unexpected key type %T", k)
	}
	p, err := newHMACMAC(hmacKey)
	if err != nil {
		return nil, err
	}
	return macWithKID(p), nil
}

// RegisterHMAC registers the JWT HMAC key manager and templates in r.
func RegisterHMAC(r *registry.Registry) error {
	if err := registry.RegisterKeyManager[*HMACParameters, *HMACKey](r, hmacKeyManager{}, true); err != nil {
		return err
	}
	for name, t := range hmacTemplates {
		params, err := NewHMACParameters(t.keySizeBytes, t.algorithm, t.kidStrategy)
		if err != nil {
			return err
		}
		if err := r.RegisterTemplate(name, params); err != nil {
			return err
		}
	}
	return nil
}

var hmacTemplates = map[string]struct {
	keySizeBytes int
	algorithm    Algorithm
	kidStrategy  KIDStrategy
}{
	"JWT_HS256":     {32, HS256, KIDStrategyBase64KeyID},
	"JWT_HS256_RAW": {32, HS256, KIDStrategyIgnored},
	"JWT_HS384":     {48, HS384, KIDStrategyBase64KeyID},
	"JWT_HS512":     {64, HS512, KIDStrategyBase64KeyID},
}

func init() {
	if err := RegisterHMAC(registry.Default()); err != nil && !errors.Is(err, clavis.ErrSecurityConfiguration) {
		panic(fmt.Sprintf("jwt.init: %v", err))
	}
}
