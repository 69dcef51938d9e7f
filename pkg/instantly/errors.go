package instantly

import "fmt"

// RemoteAPIError is returned for any non-2xx response from the platform
type RemoteAPIError struct {
	Path       string
	StatusCode int
	StatusText string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("Instantly API error on %s: %d %s", e.Path, e.StatusCode, e.StatusText)
}
