// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the storage abstraction layer for smartsearch.
//
// Contact records are supplied by the caller and never stored. What does
// persist is the list of user-defined acquisition sources, held behind the
// SourceRepository interface so the registry does not depend on a backend.
//
// # Constructor Return Type Pattern
//
// Public test constructors return interfaces to keep callers off backend
// specifics:
//
//	repo, backend, err := badger.NewMemorySourceRepository() // storage.SourceRepository
//
// Production wiring may use the concrete constructors
// (badger.NewSourceRepository) since it also owns the backend lifecycle.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewSourceRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines. Adding two sources with the
// same case-insensitive name concurrently stores exactly one of them; the
// other call fails with ErrDuplicateKey.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
