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
	"fmt"
	"time"

	"github.com/clavis-crypto/clavis-go/clavis"
)

const maxClockSkew = 10 * time.Minute

// ValidatorOptions holds the checks a [Validator] performs.
//
// For the type header, issuer and audience, exactly one of three modes
// applies: an expected value (claim must be present and match), ignore
// (claim is not checked), or the default (claim must be absent).
type ValidatorOptions struct {
	ExpectedTypeHeader *string
	ExpectedIssuer     *string
	ExpectedAudience   *string

	IgnoreTypeHeader bool
	IgnoreIssuer     bool
	IgnoreAudiences  bool

	// AllowMissingExpiration accepts tokens without an "exp" claim.
	// Tokens that never expire should be the exception.
	AllowMissingExpiration bool
	// ExpectIssuedInThePast requires an "iat" claim that is not in the
	// future.
	ExpectIssuedInThePast bool

	// ClockSkew is tolerated when comparing timestamps; at most 10
	// minutes.
	ClockSkew time.Duration
	// FixedNow, if nonzero, replaces the wall clock during validation.
	FixedNow time.Time
}

// Validator validates the claims of a decoded token.
type Validator struct {
	opts ValidatorOptions
}

// NewValidator validates opts and returns a validator.
func NewValidator(opts *ValidatorOptions) (*Validator, error) {
	if opts == nil {
		return nil, fmt.Errorf("jwt.NewValidator: nil options: %w", clavis.ErrInvalidParameters)
	}
	if opts.ExpectedTypeHeader != nil && opts.IgnoreTypeHeader {
		return nil, fmt.Errorf("jwt.NewValidator: ExpectedTypeHeader and IgnoreTypeHeader are mutually exclusive: %w", clavis.ErrInvalidParameters)
	}
	if opts.ExpectedIssuer != nil && opts.IgnoreIssuer {
		return nil, fmt.Errorf("jwt.NewValidator: ExpectedIssuer and IgnoreIssuer are mutually exclusive: %w", clavis.ErrInvalidParameters)
	}
	if opts.ExpectedAudience != nil && opts.IgnoreAudiences {
		return nil, fmt.Errorf("jwt.NewValidator: ExpectedAudience and IgnoreAudiences are mutually exclusive: %w", clavis.ErrInvalidParameters)
	}
	if opts.ClockSkew < 0 || opts.ClockSkew > maxClockSkew {
		return nil, fmt.Errorf("jwt.NewValidator: clock skew %v outside [0, %v]: %w", opts.ClockSkew, maxClockSkew, clavis.ErrInvalidParameters)
	}
	return &Validator{opts: *opts}, nil
}

// Validate checks the claims of rawJWT against the validator options.
func (v *Validator) Validate(rawJWT *RawJWT) error {
	if rawJWT == nil {
		return fmt.Errorf("jwt: nil token")
	}
	now := v.opts.FixedNow
	if now.IsZero() {
		now = time.Now()
	}
	if err := v.validateTimestamps(rawJWT, now); err != nil {
		return err
	}
	if err := v.validateTypeHeader(rawJWT); err != nil {
		return err
	}
	if err := v.validateIssuer(rawJWT); err != nil {
		return err
	}
	return v.validateAudiences(rawJWT)
}

func (v *Validator) validateTimestamps(rawJWT *RawJWT, now time.Time) error {
	skew := v.opts.ClockSkew
	if !rawJWT.HasExpiration() && !v.opts.AllowMissingExpiration {
		return fmt.Errorf("jwt: token has no expiration")
	}
	if rawJWT.HasExpiration() {
		exp, err := rawJWT.ExpiresAt()
		if err != nil {
			return err
		}
		if !exp.After(now.Add(-skew)) {
			return fmt.Errorf("jwt: token has expired")
		}
	}
	if rawJWT.HasNotBefore() {
		nbf, err := rawJWT.NotBefore()
		if err != nil {
			return err
		}
		if nbf.After(now.Add(skew)) {
			return fmt.Errorf("jwt: token is not yet valid")
		}
	}
	if v.opts.ExpectIssuedInThePast {
		iat, err := rawJWT.IssuedAt()
		if err != nil {
			return err
		}
		if iat.After(now.Add(skew)) {
			return fmt.Errorf("jwt: token was issued in the future")
		}
	}
	return nil
}

func (v *Validator) validateTypeHeader(rawJWT *RawJWT) error {
	if v.opts.ExpectedTypeHeader != nil {
		if !rawJWT.HasTypeHeader() {
			return fmt.Errorf("jwt: token has no type header, expected %q", *v.opts.ExpectedTypeHeader)
		}
		typ, err := rawJWT.TypeHeader()
		if err != nil {
			return err
		}
		if typ != *v.opts.ExpectedTypeHeader {
			return fmt.Errorf("jwt: type header %q, expected %q", typ, *v.opts.ExpectedTypeHeader)
		}
		return nil
	}
	if rawJWT.HasTypeHeader() && !v.opts.IgnoreTypeHeader {
		return fmt.Errorf("jwt: token has a type header but the validator expects none")
	}
	return nil
}

func (v *Validator) validateIssuer(rawJWT *RawJWT) error {
	if v.opts.ExpectedIssuer != nil {
		if !rawJWT.HasIssuer() {
			return fmt.Errorf("jwt: token has no issuer, expected %q", *v.opts.ExpectedIssuer)
		}
		issuer, err := rawJWT.Issuer()
		if err != nil {
			return err
		}
		if issuer != *v.opts.ExpectedIssuer {
			return fmt.Errorf("jwt: issuer %q, expected %q", issuer, *v.opts.ExpectedIssuer)
		}
		return nil
	}
	if rawJWT.HasIssuer() && !v.opts.IgnoreIssuer {
		return fmt.Errorf("jwt: token has an issuer but the validator expects none")
	}
	return nil
}

func (v *Validator) validateAudiences(rawJWT *RawJWT) error {
	if v.opts.ExpectedAudience != nil {
		if !rawJWT.HasAudiences() {
			return fmt.Errorf("jwt: token has no audience, expected %q", *v.opts.ExpectedAudience)
		}
		audiences, err := rawJWT.Audiences()
		if err != nil {
			return err
		}
		for _, a := range audiences {
			if a == *v.opts.ExpectedAudience {
				return nil
			}
		}
		return fmt.Errorf("jwt: audiences %v do not contain %q", audiences, *v.opts.ExpectedAudience)
	}
	if rawJWT.HasAudiences() && !v.opts.IgnoreAudiences {
		return fmt.Errorf("jwt: token has audiences but the validator expects none")
	}
	return nil
}
