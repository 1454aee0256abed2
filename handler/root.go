package handler

import "net/http"

type apiRoute struct {
	name string
	path string
	info string
}

var apiRoutes = []apiRoute{
	{"register", "/v1/auth/register", "create new user and send activation token to email"},
	{"activate", "/v1/auth/activate", "activate user by email and activation token"},
	{"reactivate-token", "/v1/auth/reactivate-token", "send new activation token to user email"},
	{"password-token", "/v1/auth/password-token", "send password reset token to user email"},
	{"password-reset", "/v1/auth/password-reset", "reset current password by password reset token"},
	{"jwt-obtain-pair", "/v1/jwt/token", "generate jwt pair tokens(refresh, access) by email and password"},
	{"jwt-refresh", "/v1/jwt/token/refresh", "generate jwt access token by refresh token"},
	{"blog-categories", "/v1/blog/categories", "get all categories, create new category"},
	{"blog-posts", "/v1/blog/posts", "get paginated posts filtered by author, tags and period, create new post"},
	{"healthcheck", "/v1/healthcheck", "show application status"},
}

// apiRootHandler lists the entry points of the API as absolute urls.
func (h *Handler) apiRootHandler(w http.ResponseWriter, r *http.Request) {
	base := baseURL(r)
	routes := make(envelope, len(apiRoutes))
	for _, route := range apiRoutes {
		routes[route.name] = map[string]string{
			"url":  base + route.path,
			"info": route.info,
		}
	}
	err := h.encodeJSON(w, http.StatusOK, routes, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
