package handlers

import (
	"context"
	"time"

	"golang.org/x/text/language"

	"github.com/CentipedeRTK/ticket-management-zammad/config"
	"github.com/CentipedeRTK/ticket-management-zammad/countries"
	"github.com/CentipedeRTK/ticket-management-zammad/email"
	"github.com/CentipedeRTK/ticket-management-zammad/models"
	"github.com/CentipedeRTK/ticket-management-zammad/server/common"
)

// TicketingClient is the slice of the helpdesk API the submission
// pipeline needs. Narrow on purpose so tests can swap in fakes.
type TicketingClient interface {
	CreateTicket(ctx context.Context, t common.TicketRequest) (models.Ticket, error)
	CreateNoteArticle(ctx context.Context, n common.NoteArticle) error
	CreateEmailArticle(ctx context.Context, e common.EmailArticle) error
}

// UniquenessQuerier answers whether a normalized mount point code is
// already registered.
type UniquenessQuerier interface {
	MountPointExists(ctx context.Context, mountPoint string) (bool, error)
}

type Api struct {
	cfg        config.Config
	ticketing  TicketingClient
	uniqueness UniquenessQuerier
	mpCache    *mountPointCache
	composer   *email.Composer
	countries  []countries.Country
}

func NewApi(cfg config.Config, ticketing TicketingClient, uniqueness UniquenessQuerier) *Api {
	logoSrc := email.LoadLogoDataURI(cfg.HelpdeskLogoFile)

	return &Api{
		cfg:        cfg,
		ticketing:  ticketing,
		uniqueness: uniqueness,
		mpCache:    newMountPointCache(time.Duration(cfg.MountPointCacheTTLMs) * time.Millisecond),
		composer:   email.NewComposer(cfg.HelpdeskName, cfg.HelpdeskTermsURL, logoSrc, cfg.FrancophoneAlpha3),
		countries:  countries.List(language.French),
	}
}
