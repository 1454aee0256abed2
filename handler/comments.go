package handler

import (
	"net/http"

	"github.com/emzola/blogapi/data/dto"
)

func (h *Handler) listCommentsHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	comments, err := h.interactor.ListPostComments(r.Context(), postID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"post_comments": comments}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var input dto.CommentRequestBody
	err = h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	user := h.contextGetUser(r)
	comment, err := h.interactor.CreatePostComment(r.Context(), postID, user.ID, input.Body)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := h.readCommentParams(w, r)
	if !ok {
		return
	}
	comment, err := h.interactor.GetPostComment(r.Context(), postID, commentID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := h.readCommentParams(w, r)
	if !ok {
		return
	}
	var input dto.CommentRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	if errs := validateRequest(input); errs != nil {
		h.failedValidationResponse(w, r, errs)
		return
	}
	comment, err := h.interactor.UpdatePostComment(r.Context(), postID, commentID, input.Body)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := h.readCommentParams(w, r)
	if !ok {
		return
	}
	err := h.interactor.DeleteComment(r.Context(), postID, commentID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	h.cache.Delete(commentCacheKey(commentID))
	w.WriteHeader(http.StatusNoContent)
}

// readCommentParams reads both ids of a comment route, answering 404 when
// either one is malformed.
func (h *Handler) readCommentParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	postID, err := h.readIDParam(r, "post_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return 0, 0, false
	}
	commentID, err := h.readIDParam(r, "comment_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return 0, 0, false
	}
	return postID, commentID, true
}
