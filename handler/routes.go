package handler

import (
	"expvar"
	"net/http"

	"github.com/emzola/blogapi/data"
	"github.com/julienschmidt/httprouter"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1", h.apiRootHandler)
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/v1/auth/register", h.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/activate", h.activateUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/reactivate-token", h.reactivateTokenHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/password-token", h.passwordTokenHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/password-reset", h.passwordResetHandler)

	router.HandlerFunc(http.MethodPost, "/v1/jwt/token", h.obtainTokenPairHandler)
	router.HandlerFunc(http.MethodPost, "/v1/jwt/token/refresh", h.refreshTokenHandler)

	router.HandlerFunc(http.MethodGet, "/v1/blog/categories", h.listCategoriesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blog/categories", h.requireSuperuser(h.createCategoryHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blog/categories/:category_id", h.showCategoryHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blog/categories/:category_id", h.requireSuperuser(h.updateCategoryHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blog/categories/:category_id", h.requireSuperuser(h.deleteCategoryHandler))

	router.HandlerFunc(http.MethodGet, "/v1/blog/posts", h.listPostsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blog/posts", h.requireAuthenticatedUser(h.createPostHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blog/posts/:post_id", h.showPostHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blog/posts/:post_id", h.requirePostOwnerPermission(h.updatePostHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/blog/posts/:post_id", h.requirePostOwnerPermission(h.updatePartialPostHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blog/posts/:post_id", h.requirePostOwnerPermission(h.deletePostHandler))
	router.HandlerFunc(http.MethodPut, "/v1/blog/posts/:post_id/image", h.requirePostOwnerPermission(h.uploadPostImageHandler))

	like := h.requireAuthenticatedUser(h.postReactionHandler(data.ReactionLike))
	dislike := h.requireAuthenticatedUser(h.postReactionHandler(data.ReactionDislike))
	router.HandlerFunc(http.MethodPost, "/v1/blog/posts/:post_id/like", like)
	router.HandlerFunc(http.MethodDelete, "/v1/blog/posts/:post_id/like", like)
	router.HandlerFunc(http.MethodPost, "/v1/blog/posts/:post_id/dislike", dislike)
	router.HandlerFunc(http.MethodDelete, "/v1/blog/posts/:post_id/dislike", dislike)

	router.HandlerFunc(http.MethodGet, "/v1/blog/posts/:post_id/comments", h.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blog/posts/:post_id/comments", h.requireAuthenticatedUser(h.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/blog/posts/:post_id/comments/:comment_id", h.showCommentHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blog/posts/:post_id/comments/:comment_id", h.requireCommentOwnerPermission(h.updateCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blog/posts/:post_id/comments/:comment_id", h.requireCommentOwnerPermission(h.deleteCommentHandler))

	likeComment := h.requireAuthenticatedUser(h.commentReactionHandler(data.ReactionLike))
	dislikeComment := h.requireAuthenticatedUser(h.commentReactionHandler(data.ReactionDislike))
	router.HandlerFunc(http.MethodPost, "/v1/blog/posts/:post_id/comments/:comment_id/like", likeComment)
	router.HandlerFunc(http.MethodDelete, "/v1/blog/posts/:post_id/comments/:comment_id/like", likeComment)
	router.HandlerFunc(http.MethodPost, "/v1/blog/posts/:post_id/comments/:comment_id/dislike", dislikeComment)
	router.HandlerFunc(http.MethodDelete, "/v1/blog/posts/:post_id/comments/:comment_id/dislike", dislikeComment)

	router.HandlerFunc(http.MethodPost, "/v1/users/:user_id/follow", h.requireAuthenticatedUser(h.followUserHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/users/:user_id/follow", h.requireAuthenticatedUser(h.unfollowUserHandler))

	router.HandlerFunc(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler().ServeHTTP))

	return h.metrics(h.recoverPanic(h.enableCORS(h.rateLimit(h.authenticate(router)))))
}
