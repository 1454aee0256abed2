package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/blogapi/data/dto"
	"github.com/emzola/blogapi/interactor"
	"github.com/emzola/blogapi/service"
)

func (h *Handler) obtainTokenPairHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.TokenObtainRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	pair, err := h.interactor.ObtainTokenPair(r.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.detailResponse(w, r, http.StatusUnauthorized, err.Error(), "no_active_account", nil)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"refresh": pair.Refresh, "access": pair.Access}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.RefreshRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	access, err := h.interactor.RefreshAccessToken(input.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, interactor.ErrTokenNotValid):
			h.detailResponse(w, r, http.StatusUnauthorized, "Token is invalid or expired", codeTokenNotValid, nil)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"access": access}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
