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

package registry

import (
	"fmt"

	"github.com/clavis-crypto/clavis-go/key"
)

// RegisterTemplate binds a parameters value to a stable name, e.g.
// "RSA_SSA_PSS_3072_SHA256_F4". Registering an existing name with different
// parameters fails.
func (r *Registry) RegisterTemplate(name string, params key.Parameters) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.templates[name]; ok {
		if !existing.Equal(params) {
			return fmt.Errorf("registry: template %q already registered with different parameters", name)
		}
		return nil
	}
	r.templates[name] = params
	return nil
}

// Template returns the parameters registered under name.
//
// Note that templates of a FIPS-restricted registry may still name
// non-validated algorithms; the gate is enforced at key-manager
// registration, so generating a key from such a template fails with a
// missing key manager.
func (r *Registry) Template(name string) (key.Parameters, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	params, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("registry: no template named %q", name)
	}
	return params, nil
}

// TemplateNames returns the names of all registered templates, in no
// particular order.
func (r *Registry) TemplateNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}
