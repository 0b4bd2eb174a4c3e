package predictor

import "strings"

// ExtractJSON locates the outermost JSON object embedded in raw predictor
// output. Models wrap their answers in prose or markdown fences despite
// instructions; the scan tolerates both by finding the first balanced
// brace pair outside string literals. The second return is false when no
// complete object is present.
func ExtractJSON(content string) (string, bool) {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		ch := content[i]
		switch {
		case escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}
	return "", false
}
