package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/DennisFaucher/aisalesplan"
)

// isJSON reports whether the media type is application/json.
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

// wantsJSON reports whether the client expects a JSON response: either it
// sent JSON or it accepts JSON and not HTML.
func wantsJSON(r *http.Request) bool {
	if isJSON(r.Header.Get("Content-Type")) {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// decode reads a JSON or form encoded body into the named fields of dst.
// Form fields are read by their JSON tag.
func decode(w http.ResponseWriter, r *http.Request, limit int64, dst map[string]*string) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if isJSON(r.Header.Get("Content-Type")) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return decodeError(err)
		}
		for name, ptr := range dst {
			if v, ok := body[name].(string); ok {
				*ptr = v
			}
		}
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return decodeError(err)
	}
	for name, ptr := range dst {
		*ptr = r.PostForm.Get(name)
	}
	return nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return aisalesplan.Errorf(aisalesplan.EINVALID, "Request body too large")
	}
	return aisalesplan.Errorf(aisalesplan.EINVALID, "Invalid request body")
}
