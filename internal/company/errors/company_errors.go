package companyerrors

import (
	"net/http"

	"go-doctask/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrMissingName = apperror.New(
		apperror.CodeInvalidInput,
		"name is required",
		http.StatusBadRequest,
	)
)
