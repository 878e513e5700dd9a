package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"movie-catalog-backend/internal/shared/apperror"
	"movie-catalog-backend/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Count int `json:"count"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, apperror.CodeValidation, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, apperror.CodeNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, apperror.CodeInternal, message)
}

// FromError map error từ service layer sang HTTP response
// Validation/Conflict → 400, NotFound → 404, Upstream → 500 kèm message provider,
// còn lại (storage...) log chi tiết và trả message chung
func FromError(c *gin.Context, err error) {
	statusCode, appErr := MapError(err)

	if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUpstream {
		logger.ErrorWithFields("Request failed", err, map[string]interface{}{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
	}

	message := appErr.Message
	if appErr.Kind == apperror.KindInternal {
		message = "Internal server error"
	}
	ErrorResponse(c, statusCode, appErr.Code, message)
}

// MapError trả về status code và AppError tương ứng (lỗi lạ được bọc thành internal)
func MapError(err error) (int, *apperror.AppError) {
	appErr := apperror.As(err)
	if appErr == nil {
		return http.StatusInternalServerError, apperror.NewInternalError(err)
	}

	switch appErr.Kind {
	case apperror.KindValidation, apperror.KindConflict:
		return http.StatusBadRequest, appErr
	case apperror.KindNotFound:
		return http.StatusNotFound, appErr
	default:
		return http.StatusInternalServerError, appErr
	}
}
