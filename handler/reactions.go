package handler

import (
	"net/http"

	"github.com/emzola/blogapi/data"
)

// postReactionHandler adds the reaction on POST and withdraws it on DELETE.
func (h *Handler) postReactionHandler(reaction data.Reaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := h.readIDParam(r, "post_id")
		if err != nil {
			h.notFoundResponse(w, r)
			return
		}
		user := h.contextGetUser(r)
		var post *data.Post
		if r.Method == http.MethodDelete {
			post, err = h.interactor.RemovePostReaction(r.Context(), postID, user.ID, reaction)
		} else {
			post, err = h.interactor.ReactToPost(r.Context(), postID, user.ID, reaction)
		}
		if err != nil {
			h.domainErrorResponse(w, r, err)
			return
		}
		err = h.encodeJSON(w, http.StatusOK, envelope{"post": post}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
	}
}

// commentReactionHandler adds the reaction on POST and withdraws it on DELETE.
func (h *Handler) commentReactionHandler(reaction data.Reaction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, commentID, ok := h.readCommentParams(w, r)
		if !ok {
			return
		}
		user := h.contextGetUser(r)
		var (
			comment *data.Comment
			err     error
		)
		if r.Method == http.MethodDelete {
			comment, err = h.interactor.RemoveCommentReaction(r.Context(), postID, commentID, user.ID, reaction)
		} else {
			comment, err = h.interactor.ReactToComment(r.Context(), postID, commentID, user.ID, reaction)
		}
		if err != nil {
			h.domainErrorResponse(w, r, err)
			return
		}
		err = h.encodeJSON(w, http.StatusOK, envelope{"comment": comment}, nil)
		if err != nil {
			h.serverErrorResponse(w, r, err)
		}
	}
}
