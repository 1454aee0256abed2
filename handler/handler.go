// Package handler exposes the blog API over HTTP.
package handler

import (
	"github.com/emzola/blogapi/config"
	"github.com/emzola/blogapi/interactor"
	"github.com/emzola/blogapi/internal/jsonlog"
	"github.com/jellydator/ttlcache/v3"
)

// Handler defines Handler layer.
type Handler struct {
	config     config.Config
	logger     *jsonlog.Logger
	cache      *ttlcache.Cache[string, int64]
	interactor interactor.Interactor
}

// New creates a new instance of Handler. The cache holds the author ids used
// by the owner permission checks.
func New(cfg config.Config, logger *jsonlog.Logger, cache *ttlcache.Cache[string, int64], interactor interactor.Interactor) *Handler {
	return &Handler{
		config:     cfg,
		logger:     logger,
		cache:      cache,
		interactor: interactor,
	}
}
