package storage

import (
	"context"
	"sort"
	"sync"

	"hereditas/internal/model"
)

type MemoryStore struct {
	mu        sync.RWMutex
	pedigrees map[string]model.PedigreeRecord
	runs      map[string]model.RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pedigrees = make(map[string]model.PedigreeRecord)
	s.runs = make(map[string]model.RunRecord)
	return nil
}

func (s *MemoryStore) SavePedigree(_ context.Context, record model.PedigreeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.People = append([]model.PersonRecord(nil), record.People...)
	s.pedigrees[record.ID] = record
	return nil
}

func (s *MemoryStore) GetPedigree(_ context.Context, id string) (model.PedigreeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.pedigrees[id]
	if !ok {
		return model.PedigreeRecord{}, false, nil
	}
	record.People = append([]model.PersonRecord(nil), record.People...)
	return record, true, nil
}

func (s *MemoryStore) SaveRun(_ context.Context, record model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[record.ID] = copyRun(record)
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.runs[id]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	return copyRun(record), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		records = append(records, copyRun(record))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAtUTC != records[j].CreatedAtUTC {
			return records[i].CreatedAtUTC > records[j].CreatedAtUTC
		}
		return records[i].ID > records[j].ID
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *MemoryStore) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, id)
	return nil
}

func copyRun(record model.RunRecord) model.RunRecord {
	if record.Marginals != nil {
		marginals := make(map[string]model.PersonMarginals, len(record.Marginals))
		for name, m := range record.Marginals {
			marginals[name] = m
		}
		record.Marginals = marginals
	}
	return record
}
