package stubserver

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

const contentTypeJSON = "application/json"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes the {"detail": ...} error body the client expects; code
// is added when not empty.
func writeDetail(w http.ResponseWriter, status int, detail, code string) {
	body := map[string]string{"detail": detail}
	if code != "" {
		body["code"] = code
	}
	writeJSON(w, status, body)
}

// writeFieldErrors writes a validation failure keyed by field name.
func writeFieldErrors(w http.ResponseWriter, field string, messages ...string) {
	writeJSON(w, http.StatusBadRequest, map[string][]string{field: messages})
}

// decodeJSON reads the request body into v. An empty body leaves v alone.
func decodeJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

func writeNotFound(w http.ResponseWriter) {
	writeDetail(w, http.StatusNotFound, "Not found.", "")
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w)
	}
}
