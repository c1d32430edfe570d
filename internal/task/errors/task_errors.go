package taskerrors

import (
	"net/http"

	"go-doctask/internal/shared/apperror"
)

var (
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task id",
		http.StatusBadRequest,
	)
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrNoRequiredGroups = apperror.New(
		apperror.CodeInvalidInput,
		"at least one existing document group is required",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task status",
		http.StatusBadRequest,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task priority",
		http.StatusBadRequest,
	)
	ErrAssigneeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"assignee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrUnknownDocumentType = apperror.New(
		apperror.CodeInvalidInput,
		"document type does not exist",
		http.StatusBadRequest,
	)
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"task document not found",
		http.StatusNotFound,
	)
	ErrDocumentAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"task document has already been reviewed",
		http.StatusConflict,
	)
	ErrInvalidReviewAction = apperror.New(
		apperror.CodeInvalidInput,
		"review action must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
)
