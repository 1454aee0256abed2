// Package interactor orchestrates use cases across the service layer, the
// mailer and the token manager.
package interactor

import (
	"fmt"
	"sync"

	"github.com/emzola/blogapi/config"
	"github.com/emzola/blogapi/internal/auth"
	"github.com/emzola/blogapi/internal/jsonlog"
	"github.com/emzola/blogapi/service"
)

type Interactor interface {
	accounts
	sessions
	categories
	posts
	comments
	reactions
	follows
}

// Emailer delivers a rendered template to a recipient.
type Emailer interface {
	Send(recipient, templateFile string, data any) error
}

type interactor struct {
	config  config.Config
	logger  *jsonlog.Logger
	service service.Service
	mailer  Emailer
	tokens  *auth.TokenManager
	wg      *sync.WaitGroup
}

// New creates a new instance of Interactor. Emails are sent on goroutines
// tracked by wg.
func New(cfg config.Config, logger *jsonlog.Logger, svc service.Service, mailer Emailer, tokens *auth.TokenManager, wg *sync.WaitGroup) *interactor {
	return &interactor{
		config:  cfg,
		logger:  logger,
		service: svc,
		mailer:  mailer,
		tokens:  tokens,
		wg:      wg,
	}
}

// background launches a background goroutine and recovers from panics inside
// the goroutine. It accepts an arbitrary function as a parameter and executes
// the function parameter inside the goroutine.
func (i *interactor) background(fn func()) {
	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				i.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}
