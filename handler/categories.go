package handler

import (
	"net/http"

	"github.com/emzola/blogapi/data/dto"
)

func (h *Handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.interactor.ListCategories(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"categories": categories}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.CategoryRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	category, err := h.interactor.CreateCategory(r.Context(), input.Name, input.Slug)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"new_category": category}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := h.readIDParam(r, "category_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	category, err := h.interactor.GetCategory(r.Context(), categoryID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"category": category}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := h.readIDParam(r, "category_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var input dto.CategoryRequestBody
	err = h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	category, err := h.interactor.UpdateCategory(r.Context(), categoryID, input.Name, input.Slug)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"category": category}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := h.readIDParam(r, "category_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.interactor.DeleteCategory(r.Context(), categoryID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
