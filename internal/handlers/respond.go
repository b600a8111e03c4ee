package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"assay-backend/pkg/utils"
)

type messageResponse struct {
	Message string `json:"message"`
}

// writeDeleted acknowledges a soft delete. Deleting an already deleted or
// unknown record is not an error.
func writeDeleted(w http.ResponseWriter, changed bool, entity string) {
	msg := entity + " deleted successfully"
	if !changed {
		msg = entity + " already deleted or not found"
	}
	utils.JSON(w, http.StatusOK, messageResponse{Message: msg})
}

func fail(w http.ResponseWriter, log logrus.FieldLogger, r *http.Request, err error) {
	utils.Error(w, log, r, err)
}
