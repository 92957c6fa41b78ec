package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON extracts a JSON value of type T from raw LLM text output.
// Models wrap their JSON in markdown fences, surround it with prose, slip
// in comments, and write numbers like ".5"; all of that is tolerated here.
// Both objects and top-level arrays are accepted. If validator is non-nil,
// the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T
	cleaned := stripCodeFences(raw)

	// Two candidates: the first balanced value as written, and the value
	// found after scrubbing the whole text. The first handles prose that
	// confuses the scrubber's string tracking; the second handles comments
	// that hide the real closing brace.
	var candidates []string
	if block := firstJSONValue(cleaned); block != "" {
		candidates = append(candidates, scrubJSON(block))
	}
	if block := firstJSONValue(scrubJSON(cleaned)); block != "" {
		candidates = append(candidates, block)
	}
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrInvalidOutput)
	}

	var lastErr error
	for _, cand := range candidates {
		var result T
		if err := json.Unmarshal([]byte(cand), &result); err != nil {
			lastErr = err
			continue
		}
		if validator != nil {
			if err := validator(result); err != nil {
				return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
			}
		}
		return result, nil
	}
	return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, lastErr)
}

// stripCodeFences handles markdown code fences. When a fenced block holds
// JSON it wins: that is where models put the payload. Otherwise the fence
// markers are dropped and the rest of the text kept.
func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}

	var kept, fenced []string
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		kept = append(kept, line)
		if inFence {
			fenced = append(fenced, line)
		}
	}

	if block := strings.Join(fenced, "\n"); strings.ContainsAny(block, "{[") {
		return block
	}
	return strings.Join(kept, "\n")
}

// firstJSONValue finds the first balanced JSON object or array in the text,
// respecting string literals and escapes.
func firstJSONValue(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	open := s[start]
	var closing byte = '}'
	if open == '[' {
		closing = ']'
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}

// scrubJSON repairs the two malformations models actually produce: C-style
// comments outside string values, and numeric literals missing their leading
// zero (".5", "-.5"). Everything inside string values passes through intact.
func scrubJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)

		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}

		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++

		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && atNumberStart(s, i):
			b.WriteByte('0')
			b.WriteByte(c)

		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// atNumberStart reports whether a '.' at index i begins a numeric literal,
// as opposed to following digits ("1.5") where it is already valid.
func atNumberStart(s string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch s[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':', ',', '[', '{', '-':
			return true
		default:
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
