package http

import (
	"encoding/json"
	"net/http"

	"github.com/DennisFaucher/aisalesplan"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	aisalesplan.ECONFLICT:       http.StatusConflict,
	aisalesplan.EINVALID:        http.StatusBadRequest,
	aisalesplan.ENOTFOUND:       http.StatusNotFound,
	aisalesplan.ENOTIMPLEMENTED: http.StatusNotImplemented,
	aisalesplan.EUNAUTHORIZED:   http.StatusUnauthorized,
	aisalesplan.EUNAVAILABLE:    http.StatusBadGateway,
	aisalesplan.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// Error writes err to the client as JSON or as an HTML page, matching the
// request. Internal errors are logged and reported without details.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := aisalesplan.ErrorCode(err), aisalesplan.ErrorMessage(err)
	status := ErrorStatusCode(code)

	if code == aisalesplan.EINTERNAL {
		s.logger().Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	if wantsJSON(r) {
		writeJSON(w, status, &errorResponse{Error: message})
		return
	}
	s.render(w, status, "error", &errorPage{Status: status, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
