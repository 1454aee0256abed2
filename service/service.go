package service

import (
	"context"
	"time"

	"github.com/emzola/blogapi/config"
	"github.com/emzola/blogapi/internal/jsonlog"
	"github.com/emzola/blogapi/repository"
)

type Service interface {
	users
	tokens
	categories
	posts
	comments
	reactions
	follows
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// service defines the app's service layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
	images ImageStore
	now    func() time.Time
}

// New creates a new instance of Service. images may be nil when object
// storage is not configured.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository, images ImageStore) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
		images: images,
		now:    time.Now,
	}
}
