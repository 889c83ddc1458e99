package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"sheetprep/internal/codegen"
	"sheetprep/internal/dataset"
)

// workspace is one uploaded spreadsheet and the history of operations
// applied to it. The mutex serializes apply/download on the same dataset;
// different workspaces share nothing.
type workspace struct {
	mu sync.Mutex

	ID       string
	FileName string
	FileSize int64
	Uploaded time.Time

	Data    *dataset.Dataset
	History *codegen.History
}

type store struct {
	mu sync.RWMutex
	ws map[string]*workspace
}

func newStore() *store {
	return &store{ws: make(map[string]*workspace)}
}

func (s *store) create(fileName string, fileSize int64, ds *dataset.Dataset) *workspace {
	w := &workspace{
		ID:       uuid.NewString(),
		FileName: fileName,
		FileSize: fileSize,
		Uploaded: time.Now(),
		Data:     ds,
		History:  &codegen.History{},
	}
	s.mu.Lock()
	s.ws[w.ID] = w
	s.mu.Unlock()
	return w
}

func (s *store) get(id string) (*workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.ws[id]
	return w, ok
}

func (s *store) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ws[id]; !ok {
		return false
	}
	delete(s.ws, id)
	return true
}
