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

// Package insecuresecretaccess defines the token required to read raw
// secret key bytes out of [secretdata.Bytes] values.
//
// Keeping the token in its own package lets build tooling restrict which
// parts of a codebase may touch raw key material: only code importing this
// package can construct the token.
package insecuresecretaccess

// Token is the required argument of APIs that expose raw secret data.
type Token struct{}
