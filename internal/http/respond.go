package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"attendancehub/internal/operations"
)

var statusByCode = map[string]int{
	operations.ErrEmailRequired:      http.StatusBadRequest,
	operations.ErrInvalidPayload:     http.StatusBadRequest,
	operations.ErrInvalidCredentials: http.StatusUnauthorized,
	operations.ErrUserNotFound:       http.StatusNotFound,
	operations.ErrNotFound:           http.StatusNotFound,
	operations.ErrConflict:           http.StatusConflict,
	operations.ErrAlreadyDecided:     http.StatusConflict,
	operations.ErrServerError:        http.StatusInternalServerError,
}

// decodeJSON tolerates an empty body and unknown fields; the web client sends
// whole objects back on PATCH.
func decodeJSON(r *http.Request, out interface{}) error {
	err := json.NewDecoder(r.Body).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeOpError maps an operation failure to its status. Causes of server
// errors are logged and never sent to the client.
func (s *Server) writeOpError(w http.ResponseWriter, r *http.Request, err error) {
	code := operations.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r),
			"err", err,
		)
	}
	writeError(w, status, code)
}
