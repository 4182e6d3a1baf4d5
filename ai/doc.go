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


// Package ai provides abstractions for the language-model services used by
// smartsearch.
//
// The only service is a FilterClassifier, which reads a natural-language
// query and returns the structured filters it implies. Those filters are
// applied by the search package with strict AND semantics. Concrete
// implementations live in subpackages:
//
//   - openai: an OpenAI-compatible chat client (OpenAI, Ollama, vLLM, ...)
//   - mock: deterministic test doubles
//
// Classification failures are never hidden. A transport error, an
// unparseable response or a filter set that fails validation is returned to
// the caller, and the filter applier is never run on a partial result.
package ai
