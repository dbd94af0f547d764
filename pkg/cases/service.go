package cases

import (
	"context"
	"errors"
	"strings"

	"github.com/perfdash/perfdash/internal/event_bus"
	"github.com/perfdash/perfdash/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrMissingRequiredFields = errors.New("please fill in all required fields: case id, description and manager")

type Service interface {
	CreateCase(ctx context.Context, c Case) (Case, error)
	GetCase(ctx context.Context, caseId string) (Case, error)
	ListCases(ctx context.Context) ([]Case, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) CreateCase(ctx context.Context, c Case) (Case, error) {
	c.Id = strings.TrimSpace(c.Id)
	c.Description = strings.TrimSpace(c.Description)
	c.Manager = strings.TrimSpace(c.Manager)
	c.Notes = strings.TrimSpace(c.Notes)
	if c.Id == "" || c.Description == "" || c.Manager == "" {
		return Case{}, ErrMissingRequiredFields
	}
	if c.Date.IsZero() {
		c.Date = utils.Today(s.clock)
	}

	created, err := s.repo.CreateCase(ctx, c)
	if err != nil {
		return Case{}, err
	}

	// The case is already stored; a failing subscriber must not turn this into an error for the caller.
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.CaseCreatedType, event_bus.CaseCreated{
		CaseId:    created.Id,
		Manager:   created.Manager,
		CaseDate:  created.Date,
		CreatedAt: created.CreatedAt,
	}))
	if err != nil {
		log.Warnf("case %s created, but publishing the event failed: %v", created.Id, err)
	}
	return created, nil
}

func (s *ServiceImpl) GetCase(ctx context.Context, caseId string) (Case, error) {
	return s.repo.GetCase(ctx, strings.TrimSpace(caseId))
}

func (s *ServiceImpl) ListCases(ctx context.Context) ([]Case, error) {
	return s.repo.ListCases(ctx)
}
