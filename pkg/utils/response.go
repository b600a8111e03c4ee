package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"assay-backend/internal/apperr"
	"assay-backend/internal/models"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = 1 << 20

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Detail writes {"detail": msg}, the shape every error response uses.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"detail": msg})
}

// Error maps err to its HTTP status. Server-side failures are logged with
// their cause and reported with a generic message.
func Error(w http.ResponseWriter, log logrus.FieldLogger, r *http.Request, err error) {
	e := apperr.As(err)
	status := e.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"kind":   e.Kind.String(),
		}).Error("request failed")
	}
	Detail(w, status, e.Public())
}

// DecodeJSON reads a single JSON object into dst. Unknown fields are
// ignored.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("Request body is empty")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperr.Validation("%s: invalid type, expected %s", typeErr.Field, typeErr.Type)
		}
		return apperr.BadRequest("Invalid request body")
	}
	return nil
}

// PageRequest reads page and limit query parameters.
func PageRequest(r *http.Request) (models.PageRequest, error) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		return models.PageRequest{}, err
	}
	limit, err := queryInt(r, "limit", models.DefaultPageLimit)
	if err != nil {
		return models.PageRequest{}, err
	}
	return models.NewPageRequest(page, limit), nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("%s: value is not a valid integer", name)
	}
	return v, nil
}
