package department_data

import (
	"context"
	"slices"
	"sort"
	"sync"
)

type stubKey struct {
	caseId string
	year   int
}

type RepositoryStub struct {
	mu             sync.Mutex
	data           map[stubKey][]Record
	inTransaction  bool
	transactionErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{data: make(map[stubKey][]Record)}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	snapshot := make(map[stubKey][]Record, len(r.data))
	for k, v := range r.data {
		snapshot[k] = slices.Clone(v)
	}
	r.inTransaction = true
	r.mu.Unlock()

	err := fn(r)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inTransaction = false
	if err != nil || r.transactionErr != nil {
		r.data = snapshot
		if err != nil {
			return err
		}
		return r.transactionErr
	}
	return nil
}

func (r *RepositoryStub) DeleteStale(ctx context.Context, caseId string, year int, keep []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := stubKey{caseId, year}
	kept := make([]Record, 0, len(r.data[key]))
	removed := 0
	for _, rec := range r.data[key] {
		if slices.Contains(keep, rec.Department) {
			kept = append(kept, rec)
		} else {
			removed++
		}
	}
	if len(kept) == 0 {
		delete(r.data, key)
	} else {
		r.data[key] = kept
	}
	return removed, nil
}

func (r *RepositoryStub) Upsert(ctx context.Context, caseId string, year int, records []Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(records) == 0 {
		return nil
	}
	key := stubKey{caseId, year}
	existing := r.data[key]
	ordered := make([]Record, 0, len(records)+len(existing))
	ordered = append(ordered, records...)
	for _, rec := range existing {
		if !slices.ContainsFunc(records, func(n Record) bool { return n.Department == rec.Department }) {
			ordered = append(ordered, rec)
		}
	}
	r.data[key] = ordered
	return nil
}

func (r *RepositoryStub) GetYear(ctx context.Context, caseId string, year int) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record{}, r.data[stubKey{caseId, year}]...), nil
}

func (r *RepositoryStub) ListYears(ctx context.Context, caseId string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	years := make([]int, 0)
	for k := range r.data {
		if k.caseId == caseId {
			years = append(years, k.year)
		}
	}
	sort.Ints(years)
	return years, nil
}

// SetTransactionError makes the next WithTransaction roll back with err after fn completes.
func (r *RepositoryStub) SetTransactionError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactionErr = err
}
