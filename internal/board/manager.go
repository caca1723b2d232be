package board

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Garsondee/tactics-core/internal/logger"
	"github.com/sirupsen/logrus"
)

// DefaultConfigDir is used when neither an explicit directory nor
// CONFIG_DIR is set.
const DefaultConfigDir = "configs"

// ConfigDir resolves the scenario directory: explicit dir, then the
// CONFIG_DIR environment variable, then DefaultConfigDir.
func ConfigDir(dir string) string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv("CONFIG_DIR"); env != "" {
		return env
	}
	return DefaultConfigDir
}

// Manager loads scenarios from a directory and caches them by name.
type Manager struct {
	dir       string
	scenarios map[string]*Scenario
	mu        sync.RWMutex
	log       *logrus.Entry
}

// NewManager creates a manager over dir (see ConfigDir).
func NewManager(dir string) (*Manager, error) {
	dir = ConfigDir(dir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario directory does not exist: %s", dir)
	}
	return &Manager{
		dir:       dir,
		scenarios: make(map[string]*Scenario),
		log:       logger.Component("board").WithField("dir", dir),
	}, nil
}

// Dir returns the directory the manager reads from.
func (m *Manager) Dir() string { return m.dir }

// Get loads a scenario by name (file name without .json).
func (m *Manager) Get(name string) (*Scenario, error) {
	name = strings.TrimSuffix(name, ".json")
	m.mu.RLock()
	if s, ok := m.scenarios[name]; ok {
		m.mu.RUnlock()
		return s, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	// Double-check after acquiring the write lock.
	if s, ok := m.scenarios[name]; ok {
		return s, nil
	}
	if strings.ContainsAny(name, `/\`) || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
	}
	s, err := Load(filepath.Join(m.dir, name+".json"))
	if err != nil {
		m.log.WithError(err).WithField("scenario", name).Warn("scenario load failed")
		return nil, err
	}
	m.scenarios[name] = s
	m.log.WithField("scenario", name).Debug("scenario loaded")
	return s, nil
}

// List returns the names of every valid scenario in the directory, sorted.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if _, err := m.Get(name); err != nil {
			// Skip invalid scenarios.
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Refresh drops the cache.
func (m *Manager) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios = make(map[string]*Scenario)
}
