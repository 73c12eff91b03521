package runner

import (
	"strings"
	"unicode/utf8"
)

// MergeOutput folds a process's two output streams into the single text
// blob callers display. Both streams are decoded lossily (invalid byte
// sequences become U+FFFD rather than failing). Stderr is appended after
// stdout, with a single newline separator inserted only when the stdout
// portion is non-empty and does not already end in one. The final result
// is trimmed of leading and trailing whitespace.
//
// CLI tools interleave diagnostic and informational text across both
// streams; downstream consumers want one readable blob, not two.
func MergeOutput(stdout, stderr []byte) string {
	out := lossyString(stdout)
	errText := lossyString(stderr)

	if errText != "" {
		if out != "" && !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += errText
	}

	return strings.TrimSpace(out)
}

// lossyString decodes bytes as UTF-8, substituting the replacement
// character for invalid sequences.
func lossyString(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
