package documentgrouperrors

import (
	"net/http"

	"go-doctask/internal/shared/apperror"
)

var (
	ErrInvalidDocumentGroupID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document group id",
		http.StatusBadRequest,
	)
	ErrDocumentGroupNotFound = apperror.New(
		apperror.CodeNotFound,
		"document group not found",
		http.StatusNotFound,
	)
	ErrUnknownDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"one or more document types do not exist",
		http.StatusBadRequest,
	)
	ErrCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a document group with this code already exists",
		http.StatusConflict,
	)
)
