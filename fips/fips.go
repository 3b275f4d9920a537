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

// Package fips describes the FIPS 140 posture of the process and of
// individual algorithms.
package fips

// Status is the FIPS approval status of an algorithm implementation.
type Status int

const (
	// StatusNotValidated marks an algorithm that is not FIPS approved or
	// whose implementation is not part of a validated module.
	StatusNotValidated Status = iota
	// StatusValidated marks an algorithm whose implementation may be used
	// in FIPS-only mode.
	StatusValidated
)

// String returns a human-readable name of the status.
func (s Status) String() string {
	switch s {
	case StatusValidated:
		return "VALIDATED"
	case StatusNotValidated:
		return "NOT_VALIDATED"
	default:
		return "UNKNOWN"
	}
}

// Policy captures the FIPS requirements a registry enforces at key-manager
// registration time.
type Policy struct {
	// Required restricts the registry to FIPS-approved algorithms.
	Required bool
	// ModuleValidated tells whether the underlying cryptographic module has
	// a FIPS 140 validation. Registration of any algorithm fails when
	// Required is set but the module is not validated.
	ModuleValidated bool
}

// Allows reports whether an algorithm with the given status may be
// registered under this policy.
func (p Policy) Allows(s Status) bool {
	if !p.Required {
		return true
	}
	return p.ModuleValidated && s == StatusValidated
}

// ProcessPolicy returns the policy selected at build time. The default
// build carries no FIPS requirement; building with the clavis_fips tag
// requires FIPS-approved algorithms.
func ProcessPolicy() Policy {
	return processPolicy
}
