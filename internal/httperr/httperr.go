package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// messages keeps the human-readable side of each business code stable.
var messages = map[string]string{
	CodeNotFound:         "Resource not found.",
	CodeSlotFull:         "The selected schedule has no remaining seats.",
	CodeDuplicateBooking: "An active appointment already exists for this schedule.",
	CodeWindowExpired:    "Appointments can only be changed up to 24 hours before the schedule starts.",
	CodeAlreadyCancelled: "The appointment is already cancelled.",
	CodeAlreadyPaid:      "The payment was already confirmed.",
	CodeForbidden:        "You are not allowed to perform this action.",
	CodeTargetFull:       "The target schedule has no remaining seats.",
	CodeInvalidState:     "The appointment state does not allow this operation.",
	CodeUnavailable:      "The service is busy, please retry.",
}

var statuses = map[string]int{
	CodeNotFound:         http.StatusNotFound,
	CodeSlotFull:         http.StatusConflict,
	CodeDuplicateBooking: http.StatusConflict,
	CodeWindowExpired:    http.StatusBadRequest,
	CodeAlreadyCancelled: http.StatusBadRequest,
	CodeAlreadyPaid:      http.StatusBadRequest,
	CodeForbidden:        http.StatusForbidden,
	CodeTargetFull:       http.StatusConflict,
	CodeInvalidState:     http.StatusBadRequest,
	CodeUnavailable:      http.StatusServiceUnavailable,
}

// WriteBusiness maps a core error to its HTTP shape. Returns false when err is
// not a BusinessError so the caller can fall back to a 500.
func WriteBusiness(c *gin.Context, err error) bool {
	code, ok := BusinessCode(err)
	if !ok {
		return false
	}

	status, ok := statuses[code]
	if !ok {
		status = http.StatusBadRequest
	}

	msg, ok := messages[code]
	if !ok {
		msg = code
	}

	Write(c, status, code, msg)
	return true
}
