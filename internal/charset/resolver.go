// Package charset resolves the text encoding of raw export files.
//
// Wallet exports arrive in whatever encoding the app's locale produced, with
// no declaration. The resolver asks a statistical detector for its best guess
// and backs it with a fixed fallback chain; callers try candidates in order
// until one decodes cleanly.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// detectSampleSize bounds how much of the file the detector examines.
const detectSampleSize = 4096

// fallbackCandidates is tried, in order, after the detector's best guess.
// windows-1252 decodes any byte sequence and therefore terminates the chain.
var fallbackCandidates = []string{"UTF-8", "GB18030", "Big5", "windows-1252"}

// detectorAliases remaps detector labels to the canonical names htmlindex
// understands. The detector also reports ISO-8859-1 for content that is in
// practice windows-1252.
var detectorAliases = map[string]string{
	"GB-18030":   "GB18030",
	"ISO-8859-1": "windows-1252",
}

var errReplacement = errors.New("input contains bytes invalid in this charset")

// Candidates returns the ordered list of charset names to attempt for raw
// bytes: the detector's best guess first, then the fixed fallback sequence,
// with duplicates removed.
func Candidates(raw []byte) []string {
	sample := raw
	if len(sample) > detectSampleSize {
		sample = sample[:detectSampleSize]
	}

	names := make([]string, 0, len(fallbackCandidates)+1)
	if result, err := chardet.NewTextDetector().DetectBest(sample); err == nil && result.Charset != "" {
		name := result.Charset
		if alias, ok := detectorAliases[name]; ok {
			name = alias
		}
		names = append(names, name)
	}
	names = append(names, fallbackCandidates...)

	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}

// Decode decodes raw using the named charset. It fails when the name is
// unknown or when the input contains byte sequences the charset cannot
// represent.
func Decode(raw []byte, name string) (string, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", name, err)
	}

	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode as %s: %w", name, err)
	}

	// x/text decoders substitute U+FFFD rather than erroring. A replacement
	// rune the input did not already carry marks a hard decode failure.
	if bytes.ContainsRune(decoded, utf8.RuneError) && !bytes.Contains(raw, []byte("�")) {
		return "", fmt.Errorf("decode as %s: %w", name, errReplacement)
	}
	return string(decoded), nil
}
