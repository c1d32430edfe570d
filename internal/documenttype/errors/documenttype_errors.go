package documenttypeerrors

import (
	"net/http"

	"go-doctask/internal/shared/apperror"
)

var (
	ErrInvalidDocumentTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document type id",
		http.StatusBadRequest,
	)
	ErrDocumentTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"document type not found",
		http.StatusNotFound,
	)
	ErrCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"document type code already exists",
		http.StatusConflict,
	)
)
