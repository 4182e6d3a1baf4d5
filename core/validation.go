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

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var filterValidator = validator.New()

// ValidatePerson validates a Person loaded from a record provider.
//
// Validation rules:
//   - FirstName or LastName must be set
//   - Warmth must be Cold, Warm, Hot or Champion
//   - CreatedAt must not be in the future
//
// Optional text fields are not validated; empty means absent.
func ValidatePerson(person *Person) error {
	if person == nil {
		return fmt.Errorf("%w: person is nil", ErrInvalidPerson)
	}

	if strings.TrimSpace(person.FirstName) == "" && strings.TrimSpace(person.LastName) == "" {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidPerson, person.Id, ErrEmptyName)
	}

	if err := ValidateWarmth(person.Warmth); err != nil {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidPerson, person.Id, err)
	}

	if !IsValidTimestamp(person.CreatedAt) {
		return fmt.Errorf("%w: id %d: %w", ErrInvalidPerson, person.Id, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSource validates a user-defined Source.
func ValidateSource(source *Source) error {
	if source == nil {
		return fmt.Errorf("%w: source is nil", ErrInvalidSource)
	}

	if strings.TrimSpace(source.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSource, ErrEmptySourceName)
	}

	if !source.Category.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidSource, ErrInvalidCategory, source.Category)
	}

	return nil
}

// ValidateWarmth validates that w is a defined warmth level.
func ValidateWarmth(w Warmth) error {
	if !w.Valid() {
		return fmt.Errorf("%w: value %d", ErrInvalidWarmth, w)
	}
	return nil
}

// ValidateFilters checks the shape of a classifier-produced filter set.
// It must be called before the filters are applied.
func ValidateFilters(filters *Filters) error {
	if filters == nil {
		return fmt.Errorf("%w: filters are nil", ErrInvalidFilters)
	}
	if err := filterValidator.Struct(filters); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFilters, err)
	}
	return nil
}

// MaxClockSkew is how far past the local clock a timestamp may fall and
// still be accepted. Record exports come from hosts whose clocks drift.
const MaxClockSkew = 5 * time.Minute

// IsValidTimestamp checks if a timestamp is valid (not in the future,
// allowing for MaxClockSkew).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now().Add(MaxClockSkew))
}
