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


package ai

import "errors"

var (
	// ErrMalformedResponse is returned when a model response cannot be parsed.
	ErrMalformedResponse = errors.New("malformed classifier response")

	// ErrClassifierNotConfigured is returned when classification is requested
	// but no classifier was set up.
	ErrClassifierNotConfigured = errors.New("classifier not configured")
)
