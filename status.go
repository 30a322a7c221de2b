package fetchio

import (
	"fmt"
	"net/http"
)

// Status is the final state of one request as reported by the transport.
// The zero Status means the request has not completed yet.
type Status struct {
	Code int
	Err  error
}

// OK reports whether the request completed successfully. Anything other
// than a clean 200 counts as failure.
func (s Status) OK() bool {
	return s.Err == nil && s.Code == http.StatusOK
}

func (s Status) String() string {
	if s.Err != nil {
		return fmt.Sprintf("failed: %v", s.Err)
	}
	if s.Code == 0 {
		return "pending"
	}
	return fmt.Sprintf("code %d", s.Code)
}
