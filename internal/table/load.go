package table

import "context"

// LineSource is a stream of normalized lines, typically an
// input.Decoder.
type LineSource interface {
	// Next advances to the next line, reporting false at end of
	// stream or on error.
	Next() bool
	// Line returns the current line.
	Line() string
	// Err returns the error that ended the stream, if any.
	Err() error
}

// Load drives a line source through the builder until the stream ends
// or ctx is cancelled. On a clean end the sentinel row is fed through,
// clearing the builder's truncation flag; on cancellation the flag
// stays set and whatever was buffered so far is returned.
func Load(ctx context.Context, src LineSource, b *Builder) (*Table, error) {
	for src.Next() {
		select {
		case <-ctx.Done():
			return b.Finish(), nil
		default:
		}
		b.Feed(src.Line())
	}
	if ctx.Err() != nil {
		// Cancellation tears down the producer, so whatever error
		// ended the stream is a side effect of the abort, not a
		// failure.
		return b.Finish(), nil
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	b.Feed(SentinelLine)
	return b.Finish(), nil
}
