package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/lazharichir/missingparts/api"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", "method not allowed")
}

func readAll(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// writeAuthOrRoutingError maps the façade's typed errors onto the status
// codes spec §6's table assigns them.
func writeAuthOrRoutingError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case api.AuthError:
		switch e {
		case api.ErrBadToken:
			writeError(w, http.StatusUnauthorized, string(e), "bad token")
		case api.ErrTokenNotForThisResource:
			writeError(w, http.StatusForbidden, string(e), "token does not authorize this resource")
		default:
			writeError(w, http.StatusForbidden, string(e), "forbidden")
		}
	case api.RoutingError:
		switch e {
		case api.ErrNotMatchedYet:
			writeError(w, http.StatusNotFound, string(e), "not matched yet")
		case api.ErrNoSuchGame, api.ErrNoSuchPlayer:
			writeError(w, http.StatusNotFound, string(e), "not found")
		default:
			writeError(w, http.StatusNotFound, string(e), "not found")
		}
	default:
		writeError(w, http.StatusInternalServerError, "Internal", err.Error())
	}
}
