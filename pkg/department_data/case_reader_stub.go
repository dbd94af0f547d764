package department_data

import (
	"context"

	"github.com/perfdash/perfdash/pkg/cases"
)

type CaseReaderStub struct {
	cases map[string]cases.Case
}

func NewCaseReaderStub(caseIds ...string) *CaseReaderStub {
	stub := &CaseReaderStub{cases: make(map[string]cases.Case)}
	for _, id := range caseIds {
		stub.cases[id] = cases.Case{Id: id}
	}
	return stub
}

func (s *CaseReaderStub) GetCase(ctx context.Context, caseId string) (cases.Case, error) {
	c, ok := s.cases[caseId]
	if !ok {
		return cases.Case{}, cases.ErrCaseNotFound
	}
	return c, nil
}
