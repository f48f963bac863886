package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/acoruss/acoruss.github.io/internal/models/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type apiError struct {
	status  int
	code    string
	message string
}

// errorTable is checked in order; the first match wins.
var errorTable = []struct {
	target error
	apiError
}{
	{models.ErrValidation, apiError{http.StatusBadRequest, "validation_error", "Invalid request"}},
	{models.ErrRefundExceedsBalance, apiError{http.StatusBadRequest, "refund_exceeds_balance", "Refund amount exceeds refundable balance"}},
	{models.ErrNotRefundable, apiError{http.StatusBadRequest, "not_refundable", "Payment cannot be refunded"}},
	{models.ErrInvalidSignature, apiError{http.StatusBadRequest, "invalid_signature", "Invalid webhook signature"}},
	{models.ErrUnauthenticated, apiError{http.StatusUnauthorized, "unauthenticated", "Invalid or missing API key"}},
	{models.ErrForbidden, apiError{http.StatusForbidden, "forbidden", "IP address not allowed"}},
	{models.ErrNotFound, apiError{http.StatusNotFound, "not_found", "Payment not found"}},
	{models.ErrRefundInProgress, apiError{http.StatusConflict, "refund_in_progress", "A refund is already in progress"}},
	{models.ErrRateLimited, apiError{http.StatusTooManyRequests, "rate_limited", "Rate limit exceeded"}},
	{models.ErrGatewayUnavailable, apiError{http.StatusBadGateway, "gateway_unavailable", "Payment gateway unavailable, try again later"}},
	{models.ErrGatewayRejected, apiError{http.StatusBadGateway, "gateway_error", "Payment gateway rejected the request"}},
	{models.ErrRateUnavailable, apiError{http.StatusServiceUnavailable, "rate_unavailable", "Exchange rate unavailable, try again later"}},
}

var internalError = apiError{http.StatusInternalServerError, "internal_error", "Internal server error"}

func classify(err error) apiError {
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.apiError
		}
	}
	return internalError
}

// respondError writes the error envelope and aborts the chain.
func respondError(c *gin.Context, err error) {
	e := classify(err)

	var details interface{}
	var vErr *models.ValidationError
	var gwErr *models.GatewayError
	var rlErr *models.RateLimitError
	switch {
	case errors.As(err, &vErr):
		details = vErr.Fields
	case errors.As(err, &gwErr):
		details = map[string]string{"gateway": gwErr.Message}
	case errors.As(err, &rlErr):
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(rlErr)))
	}

	// The payment exists; the caller needs its reference to poll it.
	var pending *models.PendingPaymentError
	if errors.As(err, &pending) {
		fields, _ := details.(map[string]string)
		if fields == nil {
			fields = map[string]string{}
		}
		fields["reference"] = pending.Reference
		details = fields
		e.message = fmt.Sprintf("%s. Payment %s was recorded as pending", e.message, pending.Reference)
	}

	if e.status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(e.status, dto.Fail(e.code, e.message, details))
}

func retryAfterSeconds(err *models.RateLimitError) int {
	s := int(math.Ceil(err.RetryAfter.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json or form name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindFailure turns a gin binding error into a field level ValidationError.
func bindFailure(err error, fallbackField string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.NewValidationError(map[string]string{fallbackField: "Malformed input"})
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return models.NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Enter a valid email address"
	case "url":
		return "Enter a valid URL"
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters", fe.Param())
	default:
		return "Invalid value"
	}
}
