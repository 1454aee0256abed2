package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/emzola/blogapi/interactor"
	"github.com/emzola/blogapi/service"
)

const (
	codeUnauthorized  = "access_unauthorized"
	codeAccessDenied  = "access_denied"
	codeTokenNotValid = "token_not_valid"
	codeUserNotFound  = "user_not_found"
	codeUserInactive  = "user_inactive"

	detailSuperuserOnly    = "only superuser allow"
	detailSuperuserOrOwner = "only superuser or object owner allow"
)

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	env := envelope{"error": message}
	err := h.encodeJSON(w, status, env, nil)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(500)
	}
}

// detailResponse writes the {"detail", "code"} shape used by the
// authentication and permission failures.
func (h *Handler) detailResponse(w http.ResponseWriter, r *http.Request, status int, detail, code string, headers http.Header) {
	env := envelope{"detail": detail, "code": code}
	err := h.encodeJSON(w, status, env, headers)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(500)
	}
}

func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	h.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	h.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (h *Handler) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	err := h.encodeJSON(w, http.StatusBadRequest, envelope{"errors": errors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) contentTooLargeResponse(w http.ResponseWriter, r *http.Request) {
	message := "the request body is too large"
	h.errorResponse(w, r, http.StatusRequestEntityTooLarge, message)
}

func (h *Handler) unsupportedMediaTypeResponse(w http.ResponseWriter, r *http.Request) {
	message := "the file type is not supported for this resource"
	h.errorResponse(w, r, http.StatusUnsupportedMediaType, message)
}

func (h *Handler) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	h.errorResponse(w, r, http.StatusTooManyRequests, message)
}

func (h *Handler) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	message := "invalid authentication credentials"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}

func (h *Handler) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	h.detailResponse(w, r, http.StatusUnauthorized, "Unauthorized", codeUnauthorized, nil)
}

func (h *Handler) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	headers := make(http.Header)
	headers.Set("WWW-Authenticate", `Bearer realm="api"`)
	h.detailResponse(w, r, http.StatusUnauthorized, "Given token not valid for any token type", codeTokenNotValid, headers)
}

func (h *Handler) notPermittedResponse(w http.ResponseWriter, r *http.Request, detail string) {
	h.detailResponse(w, r, http.StatusForbidden, detail, codeAccessDenied, nil)
}

// authenticationErrorResponse answers a bearer token that could not be
// resolved to an active user.
func (h *Handler) authenticationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, interactor.ErrTokenNotValid):
		h.invalidAuthenticationTokenResponse(w, r)
	case errors.Is(err, service.ErrUserNotFound):
		h.detailResponse(w, r, http.StatusUnauthorized, "User not found", codeUserNotFound, nil)
	case errors.Is(err, interactor.ErrUserInactive):
		h.detailResponse(w, r, http.StatusUnauthorized, "User is inactive", codeUserInactive, nil)
	default:
		h.serverErrorResponse(w, r, err)
	}
}

// domainErrorResponse maps service errors onto responses. Missing blog
// entities are 404, every other domain rule broken by the client is 400.
func (h *Handler) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	var weakPasswordErr *service.WeakPasswordError
	switch {
	case errors.As(err, &validationErr):
		h.failedValidationResponse(w, r, validationErr.Errors)
	case errors.As(err, &weakPasswordErr):
		h.errorResponse(w, r, http.StatusBadRequest, weakPasswordErr.Message)
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrFollowedUserNotFound),
		errors.Is(err, service.ErrFollowNotFound):
		h.errorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrUserTokenNotFound),
		errors.Is(err, service.ErrUserAlreadyActivated),
		errors.Is(err, service.ErrUserNotActivated),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrCategoryAlreadyExists),
		errors.Is(err, service.ErrSelfFollow):
		h.errorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnsupportedMediaType):
		h.unsupportedMediaTypeResponse(w, r)
	case errors.Is(err, service.ErrStorageUnavailable):
		h.errorResponse(w, r, http.StatusServiceUnavailable, err.Error())
	default:
		h.serverErrorResponse(w, r, err)
	}
}
