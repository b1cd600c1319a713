package twitter

import "fmt"

// StatusError is returned when the search API responds with a non-success
// status after retries are exhausted.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("x api status %d", e.StatusCode)
}
