package apperror

import (
	"errors"
	"fmt"
)

// Kind phân loại lỗi để handler map sang HTTP status
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindUpstream   Kind = "upstream"
	KindInternal   Kind = "internal"
)

// Error codes
const (
	CodeValidation    = "VAL001"
	CodeNotFound      = "NF001"
	CodeAlreadyMember = "CON001"
	CodeUpstream      = "UPS001"
	CodeInternal      = "SYS001"
)

// AppError custom error type dùng chung cho mọi domain
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// =====================================================
// CONSTRUCTORS
// =====================================================

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: CodeValidation, Message: message}
}

// NewValidationErrorWrap giữ lỗi gốc (vd: ozzo validation.Errors) để log chi tiết
func NewValidationErrorWrap(err error) *AppError {
	return &AppError{Kind: KindValidation, Code: CodeValidation, Message: err.Error(), Err: err}
}

// NewNotFoundError: err là sentinel của repository (có thể nil), giữ lại cho errors.Is
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{Kind: KindNotFound, Code: CodeNotFound, Message: message, Err: err}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Code: CodeAlreadyMember, Message: message}
}

// NewUpstreamError bọc lỗi từ metadata provider, message giữ nguyên status_message của provider
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Code: CodeUpstream, Message: message, Err: err}
}

func NewInternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Code: CodeInternal, Message: "Internal server error", Err: err}
}

// =====================================================
// HELPERS
// =====================================================

// As lấy *AppError trong error chain, nil nếu không có
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind kiểm tra err có thuộc kind cho trước không
func IsKind(err error, kind Kind) bool {
	appErr := As(err)
	return appErr != nil && appErr.Kind == kind
}
