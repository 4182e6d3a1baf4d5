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


// Package sources catalogs the acquisition channels contacts enter through.
//
// The default catalog is fixed and ordered. Users may append custom sources,
// which a Registry persists through a storage.SourceRepository. Source names
// are unique case-insensitively across both lists; adding a name that already
// exists is silently ignored.
//
// Resolve maps free-text source values found on records, including legacy
// snake_case values such as "cold_outreach", onto a canonical Source. Unknown
// values are never rejected; they resolve to a synthetic source in the
// "other" category.
package sources
