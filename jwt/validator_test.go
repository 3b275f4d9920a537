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

package jwt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/jwt"
)

var now = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func rawJWT(t *testing.T, opts *jwt.RawJWTOptions) *jwt.RawJWT {
	t.Helper()
	token, err := jwt.NewRawJWT(opts)
	if err != nil {
		t.Fatalf("NewRawJWT() err = %v, want nil", err)
	}
	return token
}

func TestNewValidatorFails(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts *jwt.ValidatorOptions
	}{
		{
			name: "nil options",
			opts: nil,
		},
		{
			name: "expected and ignored type header",
			opts: &jwt.ValidatorOptions{ExpectedTypeHeader: refString("JWT"), IgnoreTypeHeader: true},
		},
		{
			name: "expected and ignored issuer",
			opts: &jwt.ValidatorOptions{ExpectedIssuer: refString("issuer"), IgnoreIssuer: true},
		},
		{
			name: "expected and ignored audience",
			opts: &jwt.ValidatorOptions{ExpectedAudience: refString("audience"), IgnoreAudiences: true},
		},
		{
			name: "clock skew above ten minutes",
			opts: &jwt.ValidatorOptions{ClockSkew: 11 * time.Minute},
		},
		{
			name: "negative clock skew",
			opts: &jwt.ValidatorOptions{ClockSkew: -time.Minute},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := jwt.NewValidator(tc.opts); !errors.Is(err, clavis.ErrInvalidParameters) {
				t.Errorf("NewValidator() err = %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestValidateTimestamps(t *testing.T) {
	for _, tc := range []struct {
		name    string
		token   *jwt.RawJWTOptions
		opts    *jwt.ValidatorOptions
		wantErr bool
	}{
		{
			name:  "not expired",
			token: &jwt.RawJWTOptions{ExpiresAt: refTime(now.Add(time.Hour))},
			opts:  &jwt.ValidatorOptions{FixedNow: now},
		},
		{
			name:    "expired",
			token:   &jwt.RawJWTOptions{ExpiresAt: refTime(now.Add(-time.Hour))},
			opts:    &jwt.ValidatorOptions{FixedNow: now},
			wantErr: true,
		},
		{
			name:  "expired within clock skew",
			token: &jwt.RawJWTOptions{ExpiresAt: refTime(now.Add(-time.Minute))},
			opts:  &jwt.ValidatorOptions{FixedNow: now, ClockSkew: 2 * time.Minute},
		},
		{
			name:    "no expiration",
			token:   &jwt.RawJWTOptions{WithoutExpiration: true},
			opts:    &jwt.ValidatorOptions{FixedNow: now},
			wantErr: true,
		},
		{
			name:  "no expiration allowed",
			token: &jwt.RawJWTOptions{WithoutExpiration: true},
			opts:  &jwt.ValidatorOptions{FixedNow: now, AllowMissingExpiration: true},
		},
		{
			name: "not yet valid",
			token: &jwt.RawJWTOptions{
				ExpiresAt: refTime(now.Add(time.Hour)),
				NotBefore: refTime(now.Add(time.Minute)),
			},
			opts:    &jwt.ValidatorOptions{FixedNow: now},
			wantErr: true,
		},
		{
			name: "not before within clock skew",
			token: &jwt.RawJWTOptions{
				ExpiresAt: refTime(now.Add(time.Hour)),
				NotBefore: refTime(now.Add(time.Minute)),
			},
			opts: &jwt.ValidatorOptions{FixedNow: now, ClockSkew: 2 * time.Minute},
		},
		{
			name: "issued in the past",
			token: &jwt.RawJWTOptions{
				ExpiresAt: refTime(now.Add(time.Hour)),
				IssuedAt:  refTime(now.Add(-time.Hour)),
			},
			opts: &jwt.ValidatorOptions{FixedNow: now, ExpectIssuedInThePast: true},
		},
		{
			name: "issued in the future",
			token: &jwt.RawJWTOptions{
				ExpiresAt: refTime(now.Add(time.Hour)),
				IssuedAt:  refTime(now.Add(time.Hour)),
			},
			opts:    &jwt.ValidatorOptions{FixedNow: now, ExpectIssuedInThePast: true},
			wantErr: true,
		},
		{
			name:    "issued at required but missing",
			token:   &jwt.RawJWTOptions{ExpiresAt: refTime(now.Add(time.Hour))},
			opts:    &jwt.ValidatorOptions{FixedNow: now, ExpectIssuedInThePast: true},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			validator, err := jwt.NewValidator(tc.opts)
			if err != nil {
				t.Fatalf("NewValidator() err = %v, want nil", err)
			}
			err = validator.Validate(rawJWT(t, tc.token))
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Errorf("Validate() err = %v, wantErr = %t", err, tc.wantErr)
			}
		})
	}
}

func TestValidateClaims(t *testing.T) {
	for _, tc := range []struct {
		name    string
		token   *jwt.RawJWTOptions
		opts    *jwt.ValidatorOptions
		wantErr bool
	}{
		{
			name:  "matching type header",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, TypeHeader: refString("JWT")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				ExpectedTypeHeader:     refString("JWT"),
			},
		},
		{
			name:  "wrong type header",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, TypeHeader: refString("IJWT")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				ExpectedTypeHeader:     refString("JWT"),
			},
			wantErr: true,
		},
		{
			name:  "unexpected type header",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, TypeHeader: refString("JWT")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
			},
			wantErr: true,
		},
		{
			name:  "ignored type header",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, TypeHeader: refString("JWT")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				IgnoreTypeHeader:       true,
			},
		},
		{
			name:  "matching issuer",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, Issuer: refString("issuer")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				ExpectedIssuer:         refString("issuer"),
			},
		},
		{
			name:  "wrong issuer",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, Issuer: refString("other")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				ExpectedIssuer:         refString("issuer"),
			},
			wantErr: true,
		},
		{
			name:  "missing issuer",
			token: &jwt.RawJWTOptions{WithoutExpiration: true},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				ExpectedIssuer:         refString("issuer"),
			},
			wantErr: true,
		},
		{
			name:  "unexpected issuer",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, Issuer: refString("issuer")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
			},
			wantErr: true,
		},
		{
			name:  "ignored issuer",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, Issuer: refString("issuer")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				IgnoreIssuer:           true,
			},
		},
		{
			name: "audience contained",
			token: &jwt.RawJWTOptions{
				WithoutExpiration: true,
				Audiences:         []string{"one", "two"},
			},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				ExpectedAudience:       refString("two"),
			},
		},
		{
			name: "audience not contained",
			token: &jwt.RawJWTOptions{
				WithoutExpiration: true,
				Audiences:         []string{"one", "two"},
			},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				ExpectedAudience:       refString("three"),
			},
			wantErr: true,
		},
		{
			name:  "unexpected audience",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, Audience: refString("one")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
			},
			wantErr: true,
		},
		{
			name:  "ignored audiences",
			token: &jwt.RawJWTOptions{WithoutExpiration: true, Audience: refString("one")},
			opts: &jwt.ValidatorOptions{
				AllowMissingExpiration: true,
				FixedNow:               now,
				IgnoreAudiences:        true,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			validator, err := jwt.NewValidator(tc.opts)
			if err != nil {
				t.Fatalf("NewValidator() err = %v, want nil", err)
			}
			err = validator.Validate(rawJWT(t, tc.token))
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Errorf("Validate() err = %v, wantErr = %t", err, tc.wantErr)
			}
		})
	}
}
