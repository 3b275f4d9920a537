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

// Package key defines the Parameters and Key interfaces implemented by
// every algorithm of the library.
package key

// Parameters is an immutable description of an algorithm configuration.
//
// A Parameters value is fully validated at construction time; an invalid
// combination of values can never be represented.
type Parameters interface {
	// HasIDRequirement tells whether keys generated with these parameters
	// must carry a fixed keyset ID. Keys whose output carries an ID-derived
	// prefix require an ID; raw keys do not.
	HasIDRequirement() bool
	// Equal compares this parameters object with other structurally.
	Equal(other Parameters) bool
}

// Key holds the material and parameters of a single cryptographic function.
//
// Keys are grouped in keysets, from which primitives are obtained. Key
// values are immutable after construction.
type Key interface {
	// Parameters returns the parameters of this key.
	Parameters() Parameters
	// IDRequirement returns the required keyset ID of this key. required is
	// false for keys that may take any ID, in which case id is 0.
	IDRequirement() (id uint32, required bool)
	// Equal compares this key object with other.
	Equal(other Key) bool
}
