package validate

import "fmt"

// ConnectivityError indicates a transport-level failure reaching a probe
// target (connection refused, timeout, DNS failure).
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("failed to reach %s: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// ProtocolError indicates the target answered with an unexpected HTTP status
// code. Body carries an excerpt of the response for diagnosis.
type ProtocolError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// ContentError indicates a well-formed response whose body is missing
// required fields or otherwise fails validation.
type ContentError struct {
	URL    string
	Reason string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("invalid content from %s: %s", e.URL, e.Reason)
}
