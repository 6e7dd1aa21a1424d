package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"recommender/internal/logger"
	"recommender/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "Erreur interne"

var validationMessages = map[string]string{
	"required": "%s is required",
}

var validationMessagesWithParam = map[string]string{
	"min": "%s must be at least %s",
	"max": "%s must be at most %s",
	"gt":  "%s must be greater than %s",
	"gte": "%s must be greater than or equal to %s",
}

// respondError writes err with the status carried by a service.Error, or 500.
func respondError(c *gin.Context, log logrus.FieldLogger, err error, operation string) {
	entry := logger.FromContext(c.Request.Context(), log).WithFields(logger.Fields{
		"path":      c.FullPath(),
		"operation": operation,
		"error":     err.Error(),
	})

	var coded *service.Error
	if errors.As(err, &coded) {
		if coded.Code >= http.StatusInternalServerError {
			entry.WithField("code", coded.Code).Error("operation failed")
		} else {
			entry.WithField("code", coded.Code).Warn("operation rejected")
		}
		c.JSON(coded.Code, gin.H{"error": coded.Err.Error()})
		return
	}

	_ = c.Error(err)
	entry.Error("operation failed with unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
}

// respondBindError reports a request that could not be bound or validated.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + translateBindError(err)})
}

func translateBindError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	messages := make([]string, len(validationErrs))
	for i, fe := range validationErrs {
		messages[i] = translateFieldError(fe)
	}
	return strings.Join(messages, "; ")
}

func translateFieldError(fe validator.FieldError) string {
	if template, ok := validationMessages[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Field())
	}
	if template, ok := validationMessagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
