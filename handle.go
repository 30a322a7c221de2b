package fetchio

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// RequestHandle identifies one in-flight request and owns its accumulated
// response. The reactor creates a handle at submit time and releases it
// after its continuation has been dispatched. Identities are fresh ULIDs,
// never reused across submissions, so a continuation that resubmits the
// same target always gets a distinct handle.
type RequestHandle struct {
	id     ulid.ULID
	target string
	th     TransportHandle
	status Status
	body   []byte
}

func newRequestHandle(target string, th TransportHandle) *RequestHandle {
	return &RequestHandle{
		id:     ulid.Make(),
		target: target,
		th:     th,
	}
}

// ID returns the handle's unique identity.
func (h *RequestHandle) ID() ulid.ULID { return h.id }

// Target returns the URL this handle was submitted for.
func (h *RequestHandle) Target() string { return h.target }

// Status returns the handle's completion status. It is the zero Status
// until the reactor has observed the request finishing.
func (h *RequestHandle) Status() Status { return h.status }

func (h *RequestHandle) String() string {
	return fmt.Sprintf("%s %s (%s)", h.id, h.target, h.status)
}
