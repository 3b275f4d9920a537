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

// Package jwt provides JSON Web Token primitives backed by keysets.
package jwt

import (
	"fmt"
	"time"

	"github.com/clavis-crypto/clavis-go/clavis"
)

const (
	claimIssuer    = "iss"
	claimSubject   = "sub"
	claimAudience  = "aud"
	claimJWTID     = "jti"
	claimExpiresAt = "exp"
	claimNotBefore = "nbf"
	claimIssuedAt  = "iat"
)

var registeredClaims = map[string]bool{
	claimIssuer:    true,
	claimSubject:   true,
	claimAudience:  true,
	claimJWTID:     true,
	claimExpiresAt: true,
	claimNotBefore: true,
	claimIssuedAt:  true,
}

// jwtTimestampMax is the largest representable JWT timestamp,
// 253402300799 seconds after the epoch (9999-12-31T23:59:59Z).
var jwtTimestampMax = time.Unix(253402300799, 0)

// RawJWTOptions holds the header and claims of a token for [NewRawJWT].
// Nil pointer fields leave the corresponding claim unset.
type RawJWTOptions struct {
	TypeHeader *string

	Issuer   *string
	Subject  *string
	Audience *string
	// Audiences sets a multi-valued audience claim; it is mutually
	// exclusive with Audience.
	Audiences []string
	JWTID     *string
	ExpiresAt *time.Time
	NotBefore *time.Time
	IssuedAt  *time.Time
	// WithoutExpiration must be set to create a token with no "exp"
	// claim.
	WithoutExpiration bool

	// CustomClaims holds claims outside the registered set. Values must
	// be JSON-representable.
	CustomClaims map[string]any
}

// RawJWT is an unsigned JSON Web Token.
type RawJWT struct {
	claims     map[string]any
	typeHeader *string
}

// NewRawJWT validates opts and returns the corresponding token.
func NewRawJWT(opts *RawJWTOptions) (*RawJWT, error) {
	if opts == nil {
		return nil, fmt.Errorf("jwt.NewRawJWT: nil options: %w", clavis.ErrInvalidParameters)
	}
	if opts.ExpiresAt == nil && !opts.WithoutExpiration {
		return nil, fmt.Errorf("jwt.NewRawJWT: tokens need an expiration or WithoutExpiration: %w", clavis.ErrInvalidParameters)
	}
	if opts.ExpiresAt != nil && opts.WithoutExpiration {
		return nil, fmt.Errorf("jwt.NewRawJWT: ExpiresAt and WithoutExpiration are mutually exclusive: %w", clavis.ErrInvalidParameters)
	}
	if opts.Audience != nil && opts.Audiences != nil {
		return nil, fmt.Errorf("jwt.NewRawJWT: Audience and Audiences are mutually exclusive: %w", clavis.ErrInvalidParameters)
	}
	claims := make(map[string]any)
	for _, ts := range []struct {
		name string
		val  *time.Time
	}{
		{claimExpiresAt, opts.ExpiresAt},
		{claimNotBefore, opts.NotBefore},
		{claimIssuedAt, opts.IssuedAt},
	} {
		if ts.val == nil {
			continue
		}
		if ts.val.After(jwtTimestampMax) || ts.val.Unix() < 0 {
			return nil, fmt.Errorf("jwt.NewRawJWT: claim %q outside the valid timestamp range: %w", ts.name, clavis.ErrInvalidParameters)
		}
		claims[ts.name] = float64(ts.val.Unix())
	}
	if opts.Issuer != nil {
		claims[claimIssuer] = *opts.Issuer
	}
	if opts.Subject != nil {
		claims[claimSubject] = *opts.Subject
	}
	if opts.JWTID != nil {
		claims[claimJWTID] = *opts.JWTID
	}
	if opts.Audience != nil {
		claims[claimAudience] = []any{*opts.Audience}
	}
	if opts.Audiences != nil {
		if len(opts.Audiences) == 0 {
			return nil, fmt.Errorf("jwt.NewRawJWT: empty audiences list: %w", clavis.ErrInvalidParameters)
		}
		auds := make([]any, len(opts.Audiences))
		for i, a := range opts.Audiences {
			auds[i] = a
		}
		claims[claimAudience] = auds
	}
	for name, value := range opts.CustomClaims {
		if registeredClaims[name] {
			return nil, fmt.Errorf("jwt.NewRawJWT: claim %q must be set through its dedicated field: %w", name, clavis.ErrInvalidParameters)
		}
		claims[name] = value
	}
	return &RawJWT{claims: claims, typeHeader: opts.TypeHeader}, nil
}

func newRawJWTFromClaims(claims map[string]any, typeHeader *string) *RawJWT {
	return &RawJWT{claims: claims, typeHeader: typeHeader}
}

// HasTypeHeader tells whether the token sets the "typ" header.
func (r *RawJWT) HasTypeHeader() bool { return r.typeHeader != nil }

// TypeHeader returns the "typ" header of the token.
func (r *RawJWT) TypeHeader() (string, error) {
	if r.typeHeader == nil {
		return "", fmt.Errorf("jwt: no type header")
	}
	return *r.typeHeader, nil
}

func (r *RawJWT) stringClaim(name string) (string, error) {
	v, ok := r.claims[name]
	if !ok {
		return "", fmt.Errorf("jwt: no %q claim", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("jwt: claim %q is not a string", name)
	}
	return s, nil
}

func (r *RawJWT) timeClaim(name string) (time.Time, error) {
	v, ok := r.claims[name]
	if !ok {
		return time.Time{}, fmt.Errorf("jwt: no %q claim", name)
	}
	f, ok := v.(float64)
	if !ok {
		return time.Time{}, fmt.Errorf("jwt: claim %q is not a number", name)
	}
	return time.Unix(int64(f), 0), nil
}

func (r *RawJWT) hasClaim(name string) bool {
	_, ok := r.claims[name]
	return ok
}

// HasIssuer tells whether the token sets the "iss" claim.
func (r *RawJWT) HasIssuer() bool { return r.hasClaim(claimIssuer) }

// Issuer returns the "iss" claim.
func (r *RawJWT) Issuer() (string, error) { return r.stringClaim(claimIssuer) }

// HasSubject tells whether the token sets the "sub" claim.
func (r *RawJWT) HasSubject() bool { return r.hasClaim(claimSubject) }

// Subject returns the "sub" claim.
func (r *RawJWT) Subject() (string, error) { return r.stringClaim(claimSubject) }

// HasJWTID tells whether the token sets the "jti" claim.
func (r *RawJWT) HasJWTID() bool { return r.hasClaim(claimJWTID) }

// JWTID returns the "jti" claim.
func (r *RawJWT) JWTID() (string, error) { return r.stringClaim(claimJWTID) }

// HasAudiences tells whether the token sets the "aud" claim.
func (r *RawJWT) HasAudiences() bool { return r.hasClaim(claimAudience) }

// Audiences returns the "aud" claim as a list.
func (r *RawJWT) Audiences() ([]string, error) {
	v, ok := r.claims[claimAudience]
	if !ok {
		return nil, fmt.Errorf("jwt: no %q claim", claimAudience)
	}
	switch aud := v.(type) {
	case string:
		return []string{aud}, nil
	case []any:
		out := make([]string, len(aud))
		for i, a := range aud {
			s, ok := a.(string)
			if !ok {
				return nil, fmt.Errorf("jwt: audience %d is not a string", i)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("jwt: claim %q is neither a string nor a list", claimAudience)
	}
}

// HasExpiration tells whether the token sets the "exp" claim.
func (r *RawJWT) HasExpiration() bool { return r.hasClaim(claimExpiresAt) }

// ExpiresAt returns the "exp" claim.
func (r *RawJWT) ExpiresAt() (time.Time, error) { return r.timeClaim(claimExpiresAt) }

// HasNotBefore tells whether the token sets the "nbf" claim.
func (r *RawJWT) HasNotBefore() bool { return r.hasClaim(claimNotBefore) }

// NotBefore returns the "nbf" claim.
func (r *RawJWT) NotBefore() (time.Time, error) { return r.timeClaim(claimNotBefore) }

// HasIssuedAt tells whether the token sets the "iat" claim.
func (r *RawJWT) HasIssuedAt() bool { return r.hasClaim(claimIssuedAt) }

// IssuedAt returns the "iat" claim.
func (r *RawJWT) IssuedAt() (time.Time, error) { return r.timeClaim(claimIssuedAt) }

// CustomClaim returns the claim with the given name.
func (r *RawJWT) CustomClaim(name string) (any, error) {
	if registeredClaims[name] {
		return nil, fmt.Errorf("jwt: %q is a registered claim, use its dedicated accessor", name)
	}
	v, ok := r.claims[name]
	if !ok {
		return nil, fmt.Errorf("jwt: no %q claim", name)
	}
	return v, nil
}

// CustomClaimNames returns the names of the claims outside the
// registered set, in no particular order.
func (r *RawJWT) CustomClaimNames() []string {
	var names []string
	for name := range r.claims {
		if !registeredClaims[name] {
			names = append(names, name)
		}
	}
	return names
}
