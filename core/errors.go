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


package core

import "errors"

var (
	// ErrInvalidPerson indicates a Person failed validation.
	ErrInvalidPerson = errors.New("invalid person")

	// ErrInvalidSource indicates a Source failed validation.
	ErrInvalidSource = errors.New("invalid source")

	// ErrInvalidFilters indicates a Filters value failed validation.
	ErrInvalidFilters = errors.New("invalid filters")

	// ErrInvalidWarmth indicates a warmth value outside Cold..Champion.
	ErrInvalidWarmth = errors.New("invalid warmth")

	// ErrEmptyName indicates a person has neither a first nor a last name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptySourceName indicates the source Name field is empty.
	ErrEmptySourceName = errors.New("source name cannot be empty")

	// ErrInvalidCategory indicates an unknown SourceCategory value.
	ErrInvalidCategory = errors.New("invalid source category")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
