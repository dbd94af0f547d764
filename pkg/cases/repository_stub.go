package cases

import (
	"context"
	"sort"
	"time"
)

type RepositoryStub struct {
	cases map[string]Case
	now   time.Time
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		cases: map[string]Case{},
		now:   time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RepositoryStub) CreateCase(ctx context.Context, c Case) (Case, error) {
	if _, exists := s.cases[c.Id]; exists {
		return Case{}, ErrCaseAlreadyExists
	}
	c.CreatedAt = s.now
	s.cases[c.Id] = c
	return c, nil
}

func (s *RepositoryStub) GetCase(ctx context.Context, caseId string) (Case, error) {
	c, exists := s.cases[caseId]
	if !exists {
		return Case{}, ErrCaseNotFound
	}
	return c, nil
}

func (s *RepositoryStub) ListCases(ctx context.Context) ([]Case, error) {
	result := make([]Case, 0, len(s.cases))
	for _, c := range s.cases {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].Id < result[j].Id
	})
	return result, nil
}

func (s *RepositoryStub) Cleanup() {
	s.cases = map[string]Case{}
}
