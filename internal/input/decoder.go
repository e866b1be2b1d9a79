package input

import (
	"bufio"
	"io"
	"strings"
)

// bom prefixes stripped from the first line only.
var bomPrefixes = []string{"\xef\xbb\xbf", "\xfe\xff", "\xff\xfe"}

// Decoder normalizes raw input into clean lines: byte-order marks are
// stripped from line one, trailing carriage returns are dropped, and,
// when detab is set, every literal tab becomes a single space. The
// tab character is reserved downstream as the tokenizer's internal
// separator, so it may only survive in lines when it is itself the
// delimiter. Normalization is best-effort and never fails; only the
// underlying read can.
type Decoder struct {
	sc    *bufio.Scanner
	line  string
	detab bool
	first bool
}

// NewDecoder wraps a raw byte stream. Lines up to 8 MiB are accepted.
func NewDecoder(r io.Reader, detab bool) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	return &Decoder{sc: sc, detab: detab, first: true}
}

// Next advances to the next normalized line.
func (d *Decoder) Next() bool {
	if !d.sc.Scan() {
		return false
	}
	line := d.sc.Text()
	if d.first {
		d.first = false
		for _, bom := range bomPrefixes {
			if strings.HasPrefix(line, bom) {
				line = line[len(bom):]
				break
			}
		}
	}
	line = strings.TrimSuffix(line, "\r")
	if d.detab {
		line = strings.ReplaceAll(line, "\t", " ")
	}
	d.line = line
	return true
}

// Line returns the current normalized line.
func (d *Decoder) Line() string {
	return d.line
}

// Err returns the error that stopped scanning, if any.
func (d *Decoder) Err() error {
	return d.sc.Err()
}
