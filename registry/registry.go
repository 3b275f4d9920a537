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

// Package registry maps key types to the key managers that generate keys
// and construct primitives for them.
//
// Algorithm packages register their key manager in an init function, so a
// blank import of an algorithm package is enough to make its key type
// usable through [keyset.Manager] and the primitive factories.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/fips"
	"github.com/clavis-crypto/clavis-go/key"
)

// KeyManager generates keys and constructs primitives for one key type.
//
// Implementations are registered with [RegisterKeyManager], which binds the
// manager to the concrete [key.Parameters] and [key.Key] types it handles.
type KeyManager interface {
	// TypeID returns the globally unique identifier of the key type, e.g.
	// "type.clavis.dev/RsaSsaPssPrivateKey".
	TypeID() string
	// FIPSStatus returns the FIPS approval status of the algorithm.
	FIPSStatus() fips.Status
	// NewKey generates a fresh key for the given parameters. idRequirement
	// is the keyset ID the key must carry; it is ignored when the
	// parameters have no ID requirement.
	NewKey(params key.Parameters, idRequirement uint32) (key.Key, error)
	// Primitive constructs the primitive of the given key. The key material
	// is checked for internal consistency here, not at key construction.
	Primitive(k key.Key) (any, error)
}

type registration struct {
	km            KeyManager
	newKeyAllowed bool
	paramsType    reflect.Type
	keyType       reflect.Type
}

// Registry holds key managers and key templates.
//
// The zero value is not usable; create registries with [New] or
// [NewWithPolicy]. A Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	policy    fips.Policy
	byTypeID  map[string]*registration
	byParams  map[reflect.Type]*registration
	byKey     map[reflect.Type]*registration
	templates map[string]key.Parameters
}

// New returns an empty registry enforcing the process FIPS policy.
func New() *Registry {
	return NewWithPolicy(fips.ProcessPolicy())
}

// NewWithPolicy returns an empty registry enforcing the given FIPS policy.
func NewWithPolicy(policy fips.Policy) *Registry {
	return &Registry{
		policy:    policy,
		byTypeID:  make(map[string]*registration),
		byParams:  make(map[reflect.Type]*registration),
		byKey:     make(map[reflect.Type]*registration),
		templates: make(map[string]key.Parameters),
	}
}

// Policy returns the FIPS policy the registry enforces.
func (r *Registry) Policy() fips.Policy { return r.policy }

// RegisterKeyManager registers km in r for the parameters type P and key
// type K. newKeyAllowed tells whether the registry may generate new keys
// with this manager.
//
// Registration is idempotent. Re-registering a type ID with a manager of a
// different concrete type fails, as does widening newKeyAllowed from false
// to true; narrowing it to false is allowed. Under a FIPS-restricted
// policy, registering a manager whose algorithm is not validated fails
// with [clavis.ErrSecurityConfiguration].
func RegisterKeyManager[P key.Parameters, K key.Key](r *Registry, km KeyManager, newKeyAllowed bool) error {
	if !r.policy.Allows(km.FIPSStatus()) {
		return fmt.Errorf("registry: cannot register key manager %q in FIPS-only mode: %w", km.TypeID(), clavis.ErrSecurityConfiguration)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byTypeID[km.TypeID()]; ok {
		if reflect.TypeOf(existing.km) != reflect.TypeOf(km) {
			return fmt.Errorf("registry: key manager for %q already registered with a different implementation: %w", km.TypeID(), clavis.ErrRegistration)
		}
		if existing.paramsType != reflect.TypeOf((*P)(nil)).Elem() || existing.keyType != reflect.TypeOf((*K)(nil)).Elem() {
			return fmt.Errorf("registry: key manager for %q already registered for parameters type %v and key type %v: %w", km.TypeID(), existing.paramsType, existing.keyType, clavis.ErrRegistration)
		}
		if newKeyAllowed && !existing.newKeyAllowed {
			return fmt.Errorf("registry: cannot re-enable key generation for %q: %w", km.TypeID(), clavis.ErrRegistration)
		}
		existing.newKeyAllowed = newKeyAllowed
		return nil
	}
	reg := &registration{
		km:            km,
		newKeyAllowed: newKeyAllowed,
		paramsType:    reflect.TypeOf((*P)(nil)).Elem(),
		keyType:       reflect.TypeOf((*K)(nil)).Elem(),
	}
	if existingKey, ok := r.byKey[reg.keyType]; ok && existingKey.km.TypeID() != km.TypeID() {
		return fmt.Errorf("registry: key type %v already handled by %q: %w", reg.keyType, existingKey.km.TypeID(), clavis.ErrRegistration)
	}
	r.byTypeID[km.TypeID()] = reg
	r.byKey[reg.keyType] = reg
	// Private and public key managers of an asymmetric algorithm share a
	// parameters type; key generation binds to the manager that allows it.
	existing, bound := r.byParams[reg.paramsType]
	switch {
	case !bound:
		r.byParams[reg.paramsType] = reg
	case newKeyAllowed && existing.newKeyAllowed:
		return fmt.Errorf("registry: parameters type %v already has a generating key manager %q: %w", reg.paramsType, existing.km.TypeID(), clavis.ErrRegistration)
	case newKeyAllowed:
		r.byParams[reg.paramsType] = reg
	}
	return nil
}

// KeyManagerForTypeID returns the key manager registered for typeID.
func (r *Registry) KeyManagerForTypeID(typeID string) (KeyManager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byTypeID[typeID]
	if !ok {
		return nil, fmt.Errorf("registry: no key manager for type %q", typeID)
	}
	return reg.km, nil
}

// NewKey generates a fresh key for params using the registered key manager.
// idRequirement is the keyset ID the key must carry; it is ignored when
// params has no ID requirement.
func (r *Registry) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	r.mu.RLock()
	reg, ok := r.byParams[reflect.TypeOf(params)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: no key manager for parameters type %T", params)
	}
	if !reg.newKeyAllowed {
		return nil, fmt.Errorf("registry: key generation disallowed for %q", reg.km.TypeID())
	}
	return reg.km.NewKey(params, idRequirement)
}

// Primitive constructs the primitive of k using the registered key manager.
func (r *Registry) Primitive(k key.Key) (any, error) {
	r.mu.RLock()
	reg, ok := r.byKey[reflect.TypeOf(k)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: no key manager for key type %T", k)
	}
	return reg.km.Primitive(k)
}

var defaultRegistry = New()

// Default returns the process-wide registry. Algorithm packages register
// their key managers and templates here from init functions.
func Default() *Registry { return defaultRegistry }
