// Package runstate persists a small JSON history of analysis runs so
// repeated and scheduled executions can report what ran last and where the
// outputs landed.
package runstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RunRecord is one completed analysis run for one symbol.
type RunRecord struct {
	RunID       string    `json:"run_id"`
	Symbol      string    `json:"symbol"`
	Threshold   float64   `json:"threshold"`
	Rows        int       `json:"rows"`
	Events      int       `json:"events"`
	ReportPath  string    `json:"report_path,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// State is the on-disk run history.
type State struct {
	LastRunID string      `json:"last_run_id"`
	LastRunAt time.Time   `json:"last_run_at"`
	Runs      []RunRecord `json:"runs"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// maxHistory caps the persisted run history.
const maxHistory = 200

// LoadState reads the run state from a JSON file. Returns a zero state if
// the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the run state to a JSON file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}

// Manager handles run-state updates with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// NewRunID returns a timestamp-based run identifier.
func NewRunID() string {
	return time.Now().Format("20060102_150405")
}

// GetState returns a copy of the current state.
func (m *Manager) GetState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// RecordRun appends a completed run to the history and persists it.
func (m *Manager) RecordRun(rec RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}
	m.state.Runs = append(m.state.Runs, rec)
	if len(m.state.Runs) > maxHistory {
		m.state.Runs = m.state.Runs[len(m.state.Runs)-maxHistory:]
	}
	m.state.LastRunID = rec.RunID
	m.state.LastRunAt = rec.CompletedAt
	return SaveState(m.filePath, m.state)
}

// LastRunFor returns the most recent run record for a symbol, if any.
func (m *Manager) LastRunFor(symbol string) (RunRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.state.Runs) - 1; i >= 0; i-- {
		if m.state.Runs[i].Symbol == symbol {
			return m.state.Runs[i], true
		}
	}
	return RunRecord{}, false
}
