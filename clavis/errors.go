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

package clavis

import "errors"

// The error taxonomy of the library. All errors returned by Clavis wrap one
// of these sentinels; callers match them with [errors.Is]. None of them is
// retryable: retrying a validation or consistency failure cannot succeed
// without different input.
var (
	// ErrInvalidParameters reports a malformed or unsafe parameters object.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrRegistration reports a conflicting or downgrading registration of a
	// key manager.
	ErrRegistration = errors.New("registration conflict")

	// ErrSecurityConfiguration reports that an operation is forbidden by the
	// process security policy, e.g. the FIPS gate.
	ErrSecurityConfiguration = errors.New("operation violates security configuration")

	// ErrInvalidKeysetState reports a structural keyset violation, e.g.
	// finalizing a keyset without a primary key.
	ErrInvalidKeysetState = errors.New("invalid keyset state")

	// ErrGeneralSecurity reports a cryptographic consistency failure, e.g. a
	// corrupted key detected at primitive-construction time.
	ErrGeneralSecurity = errors.New("general security error")
)
