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


// Package mock provides test doubles for the ai package interfaces.
//
// # Usage
//
//	classifier := mock.NewMockClassifier()
//	classifier.Responses["hot at blackstone"] = &core.Filters{
//	    Company: "Blackstone",
//	    Warmth:  []int{2, 3},
//	}
//
//	// Or supply custom behavior:
//	classifier.ClassifyFunc = func(ctx context.Context, query string) (*core.Filters, error) {
//	    return nil, errors.New("service unavailable")
//	}
//
//	// Check call counts
//	count := classifier.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockClassifier: Returns canned filters by query, empty filters otherwise
//   - MockProvider: Wraps a MockClassifier
package mock
