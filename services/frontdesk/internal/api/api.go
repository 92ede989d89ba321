// Package api holds the request decoding and error mapping shared by every
// front desk HTTP handler.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

const MaxBodyBytes = 1 << 20

// RequestLogger returns a logger tagged with the request id.
func RequestLogger(logger apt.Logger, r *http.Request) apt.Logger {
	return logger.With("request_id", apt.RequestIDFrom(r.Context()))
}

// ParseIDParam reads the {id} route parameter and coerces it to a store id.
func ParseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return 0, false
	}

	id, err := record.ParseID(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return 0, false
	}

	return id, true
}

// DecodePayload reads a size-limited JSON body into T.
func DecodePayload[T any](w http.ResponseWriter, r *http.Request, log apt.Logger) (T, bool) {
	var req T

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return req, false
	}

	return req, true
}

// RespondServiceError maps the record error taxonomy onto HTTP statuses.
func RespondServiceError(w http.ResponseWriter, log apt.Logger, err error, resource string) {
	if vf, ok := record.AsValidation(err); ok {
		log.Debug("validation failed", "resource", resource, "errors", len(vf.Errors))
		apt.Error(w, http.StatusUnprocessableEntity, "validation_failed",
			fmt.Sprintf("%s is invalid", resource), vf.Errors...)
		return
	}

	switch {
	case errors.Is(err, record.ErrNotFound):
		apt.RespondError(w, http.StatusNotFound, fmt.Sprintf("%s not found", resource))
	case errors.Is(err, record.ErrTransport):
		log.Error("store unavailable", "resource", resource, "error", err)
		apt.RespondError(w, http.StatusServiceUnavailable, "Storage is unavailable, please retry")
	default:
		log.Error("request failed", "resource", resource, "error", err)
		apt.RespondError(w, http.StatusInternalServerError, fmt.Sprintf("Could not process %s", resource))
	}
}

// RespondNotFound writes the standard 404 envelope.
func RespondNotFound(w http.ResponseWriter, resource string) {
	apt.RespondError(w, http.StatusNotFound, fmt.Sprintf("%s not found", resource))
}

// RespondCreated writes a 201 success envelope.
func RespondCreated(w http.ResponseWriter, data any, links ...apt.Link) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(apt.SuccessResponse{Data: data, Links: links})
}

// ResourceLinks builds self/collection links for an integer-keyed resource.
func ResourceLinks(collectionPath string, id int64) []apt.Link {
	self := ResourcePath(collectionPath, id)
	return apt.NewLinkBuilder().
		Custom(apt.RelSelf, self).
		Custom(apt.RelUpdate, self).
		Custom(apt.RelDelete, self).
		Custom(apt.RelCollection, collectionPath).
		Build()
}

// ResourcePath joins a collection path and an id.
func ResourcePath(collectionPath string, id int64) string {
	return collectionPath + "/" + strconv.FormatInt(id, 10)
}

// CollectionMeta is attached to list responses.
type CollectionMeta struct {
	Count int `json:"count"`
}

// RespondList writes a collection envelope with its item count.
func RespondList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	apt.Respond(w, http.StatusOK, items, CollectionMeta{Count: len(items)})
}

// QueryBool reads a boolean query parameter, false when absent or malformed.
func QueryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}
