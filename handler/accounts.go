package handler

import (
	"fmt"
	"net/http"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/data/dto"
)

func (h *Handler) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.RegisterRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	dateOfBirth, err := data.ParseDate(input.DateOfBirth)
	if err != nil {
		h.failedValidationResponse(w, r, map[string]string{
			"date_of_birth": "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.",
		})
		return
	}
	user := &data.User{
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Profile: data.Profile{
			Avatar:      input.Avatar,
			Gender:      input.Gender,
			DateOfBirth: dateOfBirth,
			Bio:         input.Bio,
			Info:        input.Info,
		},
	}
	token, err := h.interactor.RegisterUser(r.Context(), user, input.Password)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{
		"message": fmt.Sprintf("User registered successfully. Please check %s for next instructions.", user.Email),
		"token":   token.Plaintext,
		"user":    user,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) activateUserHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.ActivateRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	err = h.interactor.ActivateUser(r.Context(), input.Email, input.Token)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "User account activated successfully."}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) reactivateTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.EmailRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	token, err := h.interactor.ReactivateUserToken(r.Context(), input.Email)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{
		"message": "Reactivation token complete please check your email.",
		"token":   token.Plaintext,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) passwordTokenHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.EmailRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	err = h.interactor.RequestPasswordReset(r.Context(), input.Email)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "Reset password token created please check your email."}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) passwordResetHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.PasswordResetRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	err = h.interactor.PasswordReset(r.Context(), input.Email, input.Token, input.NewPassword)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"message": "Password reset successfully."}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
