package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"foodhub-be/internal/transport"
	"foodhub-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(chi.URLParam(r, name))
	if !ok {
		transport.Error(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional id query parameter. ok is false when the value
// is present but malformed, after writing the 400.
func queryID(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	id, ok := utils.ParseUUID(raw)
	if !ok {
		transport.Error(w, http.StatusBadRequest, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

func queryFloat(w http.ResponseWriter, r *http.Request, name string) (*float64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		transport.Error(w, http.StatusBadRequest, "Invalid "+name)
		return nil, false
	}
	return &v, true
}

func pageFrom(r *http.Request, defaultLimit int) utils.Page {
	q := r.URL.Query()
	return utils.ParsePage(q.Get("page"), q.Get("limit"), defaultLimit)
}

// currentUser returns the authenticated caller. Routes using it sit behind
// Authenticate, so a missing id is a wiring bug answered with 401.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.Error(w, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, "", false
	}
	return id, utils.GetUserRoleFromContext(r.Context()), true
}

// decode reads a JSON body and writes the 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := transport.DecodeJSON(r, dst); err != nil {
		msg := err.Error()
		if errors.Is(err, transport.ErrEmptyBody) {
			msg = "Request body is required"
		}
		transport.Error(w, http.StatusBadRequest, upperFirst(msg))
		return false
	}
	return true
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
