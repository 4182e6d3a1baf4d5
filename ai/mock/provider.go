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


package mock

import "github.com/poiesic/smartsearch/ai"

type MockProvider struct {
	classifier *MockClassifier
	closed     bool
}

func NewMockProvider() ai.Provider {
	return &MockProvider{classifier: NewMockClassifier()}
}

func NewMockProviderWithClassifier(classifier *MockClassifier) ai.Provider {
	return &MockProvider{classifier: classifier}
}

func (p *MockProvider) Classifier() ai.FilterClassifier {
	return p.classifier
}

func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

func (p *MockProvider) Closed() bool {
	return p.closed
}

func (p *MockProvider) GetMockClassifier() *MockClassifier {
	return p.classifier
}
