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


package openai

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It quotes object keys that are missing one or both quotes and drops
// trailing commas before a closing brace or bracket. String contents are
// never touched.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)
	inString := false

	for i := 0; i < len(in); i++ {
		ch := in[i]

		if inString {
			out = append(out, ch)
			switch ch {
			case '\\':
				if i+1 < len(in) {
					i++
					out = append(out, in[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out = append(out, ch)

		case '{', ',':
			// Pattern: `[2, 3,]` or `{"a": 1,}`
			if ch == ',' && closesNext(in, i+1) {
				continue
			}
			out = append(out, ch)

			// Skip whitespace
			j := i + 1
			for j < len(in) && isSpace(in[j]) {
				j++
			}
			out = append(out, in[i+1:j]...)

			// Check if we have an unquoted key (starts with letter, not with quote)
			k := j
			for k < len(in) && isKeyRune(in[k]) {
				k++
			}
			if k > j && isLetter(in[j]) {
				switch {
				case k+1 < len(in) && in[k] == '"' && in[k+1] == ':':
					// Pattern: `, type":` -> `, "type":`
					out = append(out, '"')
					out = append(out, in[j:k]...)
					out = append(out, '"', ':')
					i = k + 1
					continue
				case k < len(in) && in[k] == ':':
					// Pattern: `, type:` -> `, "type":`
					out = append(out, '"')
					out = append(out, in[j:k]...)
					out = append(out, '"', ':')
					i = k
					continue
				}
			}
			i = j - 1

		default:
			out = append(out, ch)
		}
	}

	return string(out)
}

// closesNext reports whether the next non-space rune at or after i closes
// an object or array.
func closesNext(in []rune, i int) bool {
	for i < len(in) && isSpace(in[i]) {
		i++
	}
	return i < len(in) && (in[i] == '}' || in[i] == ']')
}
