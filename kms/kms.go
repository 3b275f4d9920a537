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

// Package kms routes key URIs to registered key-management service
// clients.
//
// A key URI names a key held by a remote KMS, e.g.
// "gcp-kms://projects/p/locations/l/keyRings/r/cryptoKeys/k" or
// "aws-kms://arn:aws:kms:...". Clients are registered per URI prefix.
package kms

import (
	"fmt"
	"strings"
	"sync"

	"github.com/clavis-crypto/clavis-go/clavis"
)

// Client knows how to obtain AEADs for the key URIs of one KMS.
type Client interface {
	// Supported tells whether keyURI belongs to this client.
	Supported(keyURI string) bool
	// AEAD returns a remote AEAD backed by keyURI.
	AEAD(keyURI string) (clavis.AEADWithContext, error)
}

var (
	mu      sync.RWMutex
	clients []Client
)

// RegisterClient makes c available to [GetClient]. Clients are consulted
// in registration order.
func RegisterClient(c Client) error {
	if c == nil {
		return fmt.Errorf("kms: nil client")
	}
	mu.Lock()
	defer mu.Unlock()
	clients = append(clients, c)
	return nil
}

// GetClient returns the first registered client supporting keyURI.
func GetClient(keyURI string) (Client, error) {
	mu.RLock()
	defer mu.RUnlock()
	for _, c := range clients {
		if c.Supported(keyURI) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("kms: no client registered for %q", keyURI)
}

// ClearClients removes all registered clients. Meant for tests.
func ClearClients() {
	mu.Lock()
	defer mu.Unlock()
	clients = nil
}

// PrefixClient is a helper for clients that claim all key URIs under a
// fixed prefix.
type PrefixClient struct {
	Prefix string
}

// Supported tells whether keyURI starts with the client prefix.
func (c PrefixClient) Supported(keyURI string) bool {
	return strings.HasPrefix(keyURI, c.Prefix)
}

// ValidateKeyURI returns an error unless keyURI starts with the client
// prefix.
func (c PrefixClient) ValidateKeyURI(keyURI string) error {
	if !c.Supported(keyURI) {
		return fmt.Errorf("kms: key URI %q lacks prefix %q: %w", keyURI, c.Prefix, clavis.ErrInvalidParameters)
	}
	return nil
}
