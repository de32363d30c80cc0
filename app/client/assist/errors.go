package assist

import (
	"errors"
	"fmt"
)

// ErrRateLimited is returned once every retry of a rate-limited
// request has been used up.
var ErrRateLimited = errors.New("rate limited by upstream")

// UpstreamError is a non-2xx relay response other than a rate limit.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}
