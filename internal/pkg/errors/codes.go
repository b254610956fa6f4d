package errors

import "net/http"

const CodeInvalidInput = "INVALID_INPUT"

// HTTP-facing AppErrors for the autocomplete endpoint (spec §6 External
// interfaces). The handler returns ErrInvalidRequest and
// ErrBackendUnavailable; utils.SendError falls back to ErrInternalServer.
var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrBackendUnavailable = New(
		"BACKEND_UNAVAILABLE",
		"Search backend is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
