package handler

import "net/http"

func (h *Handler) followUserHandler(w http.ResponseWriter, r *http.Request) {
	followedID, err := h.readIDParam(r, "user_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	follow, err := h.interactor.FollowUser(r.Context(), user.ID, followedID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{"follow": follow}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	followedID, err := h.readIDParam(r, "user_id")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	err = h.interactor.UnfollowUser(r.Context(), user.ID, followedID)
	if err != nil {
		h.domainErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
