package intelligence

import (
	"context"
	"errors"
	"time"
)

// ErrNoDate is returned when the model reports that the text contains no
// expiry date. Callers treat it the same as any other failure: fall back to
// pattern extraction.
var ErrNoDate = errors.New("no expiry date suggested")

// ExpiryDateSuggester asks an external language model for a first-pass expiry
// date guess. Implementations must bound the call with a timeout; the caller
// never retries.
type ExpiryDateSuggester interface {
	SuggestExpiryDate(ctx context.Context, text string) (time.Time, error)
}
