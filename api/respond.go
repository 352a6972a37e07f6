package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"roulette/models"
)

// executeResponse mirrors the original response envelope: an action name,
// its attributes and the transfer instructions the operation emitted.
type executeResponse struct {
	Action     string                        `json:"action"`
	Attributes map[string]any                `json:"attributes,omitempty"`
	Transfers  []*models.TransferInstruction `json:"transfers,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// pagination reads the start_after and limit query parameters. The zero
// values fall through to the service-side defaults.
func pagination(r *http.Request) (startAfter string, limit int, err error) {
	startAfter = r.URL.Query().Get("start_after")
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return "", 0, fmt.Errorf("invalid limit %q", raw)
		}
	}
	return startAfter, limit, nil
}

// paginationInt64 reads an integer start_after cursor. An absent cursor
// defaults to -1 so that id 0 rows are included: round ids start at 0, and
// the cursor is exclusive.
func paginationInt64(r *http.Request) (startAfter int64, limit int, err error) {
	raw, limit, err := pagination(r)
	if err != nil {
		return 0, 0, err
	}
	startAfter = -1
	if raw != "" {
		startAfter, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start_after %q", raw)
		}
	}
	return startAfter, limit, nil
}
