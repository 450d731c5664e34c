package handlers

import (
	"errors"
	"net/http"
	"strings"

	"infinitewash/services/apperror"
	"infinitewash/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps err onto its HTTP status and writes the standard error body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperror.HTTPStatus(err)
	kind := apperror.KindOf(err)

	var details string
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		details = strings.Join(appErr.Fields, ",")
	} else {
		logger.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
	}
	utils.JSONErrorKind(c, status, string(kind), apperror.Message(err), details)
}

// respondBindError reports a malformed request body.
func respondBindError(c *gin.Context, err error) {
	utils.JSONErrorKind(c, http.StatusBadRequest, string(apperror.Validation), "Invalid request body", err.Error())
}
