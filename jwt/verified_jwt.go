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

import "time"

// VerifiedJWT is a token whose MAC or signature was verified and whose
// claims passed validation.
type VerifiedJWT struct {
	token *RawJWT
}

func newVerifiedJWT(token *RawJWT) *VerifiedJWT { return &VerifiedJWT{token: token} }

// HasTypeHeader tells whether the token sets the "typ" header.
func (v *VerifiedJWT) HasTypeHeader() bool { return v.token.HasTypeHeader() }

// TypeHeader returns the "typ" header of the token.
func (v *VerifiedJWT) TypeHeader() (string, error) { return v.token.TypeHeader() }

// HasIssuer tells whether the token sets the "iss" claim.
func (v *VerifiedJWT) HasIssuer() bool { return v.token.HasIssuer() }

// Issuer returns the "iss" claim.
func (v *VerifiedJWT) Issuer() (string, error) { return v.token.Issuer() }

// HasSubject tells whether the token sets the "sub" claim.
func (v *VerifiedJWT) HasSubject() bool { return v.token.HasSubject() }

// Subject returns the "sub" claim.
func (v *VerifiedJWT) Subject() (string, error) { return v.token.Subject() }

// HasJWTID tells whether the token sets the "jti" claim.
func (v *VerifiedJWT) HasJWTID() bool { return v.token.HasJWTID() }

// JWTID returns the "jti" claim.
func (v *VerifiedJWT) JWTID() (string, error) { return v.token.JWTID() }

// HasAudiences tells whether the token sets the "aud" claim.
func (v *VerifiedJWT) HasAudiences() bool { return v.token.HasAudiences() }

// Audiences returns the "aud" claim as a list.
func (v *VerifiedJWT) Audiences() ([]string, error) { return v.token.Audiences() }

// HasExpiration tells whether the token sets the "exp" claim.
func (v *VerifiedJWT) HasExpiration() bool { return v.token.HasExpiration() }

// ExpiresAt returns the "exp" claim.
func (v *VerifiedJWT) ExpiresAt() (time.Time, error) { return v.token.ExpiresAt() }

// HasNotBefore tells whether the token sets the "nbf" claim.
func (v *VerifiedJWT) HasNotBefore() bool { return v.token.HasNotBefore() }

// NotBefore returns the "nbf" claim.
func (v *VerifiedJWT) NotBefore() (time.Time, error) { return v.token.NotBefore() }

// HasIssuedAt tells whether the token sets the "iat" claim.
func (v *VerifiedJWT) HasIssuedAt() bool { return v.token.HasIssuedAt() }

// IssuedAt returns the "iat" claim.
func (v *VerifiedJWT) IssuedAt() (time.Time, error) { return v.token.IssuedAt() }

// CustomClaim returns the claim with the given name.
func (v *VerifiedJWT) CustomClaim(name string) (any, error) { return v.token.CustomClaim(name) }

// CustomClaimNames returns the names of the claims outside the
// registered set.
func (v *VerifiedJWT) CustomClaimNames() []string { return v.token.CustomClaimNames() }
