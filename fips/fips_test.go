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

package fips_test

import (
	"testing"

	"github.com/clavis-crypto/clavis-go/fips"
)

func TestPolicyAllows(t *testing.T) {
	for _, tc := range []struct {
		name   string
		policy fips.Policy
		status fips.Status
		want   bool
	}{
		{
			name:   "no requirement, not validated algorithm",
			policy: fips.Policy{},
			status: fips.StatusNotValidated,
			want:   true,
		},
		{
			name:   "no requirement, validated algorithm",
			policy: fips.Policy{},
			status: fips.StatusValidated,
			want:   true,
		},
		{
			name:   "required with validated module, validated algorithm",
			policy: fips.Policy{Required: true, ModuleValidated: true},
			status: fips.StatusValidated,
			want:   true,
		},
		{
			name:   "required with validated module, not validated algorithm",
			policy: fips.Policy{Required: true, ModuleValidated: true},
			status: fips.StatusNotValidated,
			want:   false,
		},
		{
			name:   "required without validated module, validated algorithm",
			policy: fips.Policy{Required: true},
			status: fips.StatusValidated,
			want:   false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.policy.Allows(tc.status); got != tc.want {
				t.Errorf("Allows(%v) = %t, want %t", tc.status, got, tc.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	if got := fips.StatusValidated.String(); got != "VALIDATED" {
		t.Errorf("StatusValidated.String() = %q, want %q", got, "VALIDATED")
	}
	if got := fips.StatusNotValidated.String(); got != "NOT_VALIDATED" {
		t.Errorf("StatusNotValidated.String() = %q, want %q", got, "NOT_VALIDATED")
	}
}
