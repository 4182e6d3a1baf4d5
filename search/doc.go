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


// Package search implements the deterministic contact search pipeline.
//
// A raw query is parsed by a fixed sequence of rule-based extraction steps
// into typed intents plus residual free text. Each intent is then scored
// against every contact record; records whose total score is positive are
// returned best first with human-readable explanations.
//
// The package also applies structured filter sets produced by an external
// classifier. Unlike intent search, every populated filter field must match
// for a record to be returned.
package search
