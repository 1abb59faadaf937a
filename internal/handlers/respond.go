package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes carried alongside the human message so the
// presentation layer does not have to collapse every failure into a generic
// error view.
const (
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeForbidden        = "forbidden"
	CodeConflict         = "conflict"
	CodeInternal         = "internal"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"code": code, "error": message})
}

func respondNotFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, CodeNotFound, message)
}

func respondValidation(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeValidationFailed, message)
}

func respondForbidden(c *gin.Context, message string) {
	respondError(c, http.StatusForbidden, CodeForbidden, message)
}

func respondInternal(c *gin.Context, code, message string) {
	respondError(c, http.StatusInternalServerError, code, message)
}
