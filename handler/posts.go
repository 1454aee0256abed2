package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/emzola/blogapi/data"
	"github.com/emzola/blogapi/data/dto"
	"github.com/emzola/blogapi/repository/specification"
	"github.com/emzola/blogapi/service"
)

// maxImageSize bounds the post image accepted by the upload endpoint.
const maxImageSize = 5 << 20

func (h *Handler) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	filters := h.readPagination(qs)
	conditions := specification.FromQuery(qs, time.Now())
	posts, metadata, err := h.interactor.ListPosts(r.Context(), filters, conditions)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{
		"posts":        posts,
		"pages":        metadata.TotalPages,
		"current_page": metadata.CurrentPage,
		"prev_page":    metadata.HasPrevious,
		"next_page":    metadata.HasNext,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.PostRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	user := h.contextGetUser(r)
	post, err := h.interactor.CreatePost(r.Context(), postInput(input, user.ID))
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"post": post}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	post, err := h.interactor.GetPost(r.Context(), postID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var input dto.PostRequestBody
	err = h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	post, err := h.interactor.UpdatePost(r.Context(), postID, postInput(input, 0))
	if err != nil {
		switch {
		// A replaced post pointing at a missing category is a bad request.
		case errors.Is(err, service.ErrCategoryNotFound):
			h.errorResponse(w, r, http.StatusBadRequest, err.Error())
		default:
			h.domainErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updatePartialPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var input dto.PostPatchRequestBody
	err = h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	patch := &data.PostPatch{
		Title:      input.Title,
		Slug:       input.Slug,
		Content:    input.Content,
		ImageURL:   input.ImageURL,
		Status:     input.Status,
		CategoryID: input.CategoryID,
		Tags:       input.Tags,
	}
	post, err := h.interactor.UpdatePartialPost(r.Context(), postID, patch)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.interactor.DeletePost(r.Context(), postID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	h.cache.Delete(postCacheKey(postID))
	w.WriteHeader(http.StatusNoContent)
}

// uploadPostImageHandler stores the multipart "image" field and points the
// post at it.
func (h *Handler) uploadPostImageHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1<<10)
	err = r.ParseMultipartForm(maxImageSize)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			h.contentTooLargeResponse(w, r)
		default:
			h.badRequestResponse(w, r, err)
		}
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		h.failedValidationResponse(w, r, map[string]string{"image": "No file was submitted."})
		return
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	post, err := h.interactor.UploadPostImage(r.Context(), postID, image)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func postInput(input dto.PostRequestBody, authorID int64) *data.PostInput {
	return &data.PostInput{
		Title:      input.Title,
		Slug:       input.Slug,
		AuthorID:   authorID,
		Content:    input.Content,
		ImageURL:   input.ImageURL,
		Status:     input.Status,
		CategoryID: input.CategoryID,
		Tags:       input.Tags,
	}
}
