package table

import "strings"

// Splitter turns a normalized line into ordered column values.
type Splitter struct {
	// Delim is the column delimiter, exactly one character.
	Delim string
	// Quoted enables best-effort quote-aware splitting.
	Quoted bool
}

// Split tokenizes a line that has already passed through the decoder.
//
// When quoting is enabled and the line is fully quote-wrapped, every
// `"<delim>"` boundary is merged into the reserved placeholder before
// splitting, which protects delimiters inside quoted fields. The
// approximation only works when every column is quote-wrapped; a line
// mixing quoted and bare fields is split on every delimiter. When the
// delimiter is tab the placeholder coincides with it and the merge
// protects nothing: quoted tabs still split, though the wrapping
// quotes are stripped. Known limitations, kept as-is.
func (s Splitter) Split(line string) []string {
	if s.Quoted && len(line) >= 2 &&
		strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		inner := line[1 : len(line)-1]
		inner = strings.ReplaceAll(inner, `"`+s.Delim+`"`, string(placeholder))
		return strings.Split(inner, string(placeholder))
	}
	return strings.Split(line, s.Delim)
}
