package install

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContentMissing marks a mod whose download reported success but whose
// cache directory does not exist on disk.
var ErrContentMissing = errors.New("mod content missing after download")

// AggregateError reports every mod that failed during a reconcile pass. It
// is returned only after every desired mod has been attempted.
type AggregateError struct {
	Failed []string
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("failed to install %d mod(s): %s",
		len(e.Failed), strings.Join(e.Failed, ", "))
}
