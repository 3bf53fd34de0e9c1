package engine

import (
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
)

// Kind names the stable category an engine error collapses into.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindUnchanged   Kind = "unchanged"
	KindForbidden   Kind = "forbidden"
	KindUnavailable Kind = "unavailable"
	KindInternal    Kind = "internal"
)

// Error is a classified engine failure ready for the HTTP layer.
// KindUnchanged carries Status 200: the engine rejected the operation
// only because the resource is already in the requested state, which
// callers treat as success.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Classify maps an engine client error to a stable category and HTTP
// status. noun names the resource kind ("container", "image", ...) and
// is interpolated into the user-facing message.
func Classify(noun string, err error) *Error {
	switch {
	case errdefs.IsNotFound(err):
		return &Error{Kind: KindNotFound, Status: 404, Message: noun + " not found"}
	case errdefs.IsNotModified(err):
		return &Error{Kind: KindUnchanged, Status: 200, Message: noun + " already in requested state"}
	case errdefs.IsConflict(err):
		return &Error{Kind: KindConflict, Status: 409, Message: noun + " is in use"}
	case errdefs.IsForbidden(err):
		return &Error{Kind: KindForbidden, Status: 403, Message: "operation not allowed on this " + noun}
	case client.IsErrConnectionFailed(err):
		return &Error{Kind: KindUnavailable, Status: 500, Message: "engine unavailable"}
	default:
		return &Error{Kind: KindInternal, Status: 500, Message: "engine request failed"}
	}
}
