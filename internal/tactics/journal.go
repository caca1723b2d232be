package tactics

import (
	"fmt"
	"strings"
	"sync"
)

// Journal categories.
const (
	CatUnit   = "unit"
	CatMove   = "move"
	CatVision = "vision"
	CatCover  = "cover"
	CatBoard  = "board"
)

// Entry is one recorded engine event.
type Entry struct {
	Tick     int
	Unit     string // label e.g. "a#1", or "--" for board events
	Team     string
	Category string
	Key      string
	Value    string
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=004] a#1   move      entered          (1,0)->(2,0)
func (e Entry) String() string {
	return fmt.Sprintf("[T=%03d] %-5s %-9s %-16s %s",
		e.Tick, e.Unit, e.Category, e.Key, e.Value)
}

// Journal is an unbounded, machine-readable record of what the engine did.
// Reports and tests read it back with Filter and friends.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
	verbose bool
}

// NewJournal creates a Journal. Verbose journals also record read-only
// queries (cover verdicts, sight checks).
func NewJournal(verbose bool) *Journal {
	return &Journal{verbose: verbose}
}

// Add records a new entry.
func (j *Journal) Add(e Entry) {
	j.mu.Lock()
	j.entries = append(j.entries, e)
	j.mu.Unlock()
}

// AddVerbose records e only when verbose mode is on.
func (j *Journal) AddVerbose(e Entry) {
	if !j.verbose {
		return
	}
	j.Add(e)
}

// Entries returns a copy of all recorded entries.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (j *Journal) Filter(category, key string) []Entry {
	var out []Entry
	for _, e := range j.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterUnit returns entries for one unit label.
func (j *Journal) FilterUnit(label string) []Entry {
	var out []Entry
	for _, e := range j.Entries() {
		if e.Unit == label {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match category and key.
func (j *Journal) Count(category, key string) int {
	return len(j.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key.
func (j *Journal) LastOf(category, key string) (Entry, bool) {
	entries := j.Filter(category, key)
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry reports whether any entry matches category, key and a value
// substring. Empty arguments match anything.
func (j *Journal) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range j.Filter(category, key) {
		if valueSubstr == "" || strings.Contains(e.Value, valueSubstr) {
			return true
		}
	}
	return false
}

// Format returns the whole journal, one entry per line.
func (j *Journal) Format() string {
	var sb strings.Builder
	for _, e := range j.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
