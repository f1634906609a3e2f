// Package fold provides case folding for switch keys and switch values.
// Used by easyparse for stored switch forms and incoming command-line tokens.
package fold

import (
	"sync"

	"golang.org/x/text/cases"
)

// maxEntries bounds the memo table; keys past it are folded but not stored
const maxEntries = 4096

// Folder folds strings to their canonical case and memoizes the result.
// Safe for concurrent use.
type Folder struct {
	caser  cases.Caser
	folded map[string]string
	mutex  sync.RWMutex
}

// NewFolder creates a folder with optional pre-allocated capacity
func NewFolder(capacity int) *Folder {
	if capacity <= 0 {
		capacity = 64
	}
	return &Folder{
		caser:  cases.Fold(),
		folded: make(map[string]string, capacity),
	}
}

// Fold returns the case-folded form of s.
func (f *Folder) Fold(s string) string {
	// Fast path: plain lower-case ASCII is already folded
	if isFoldedASCII(s) {
		return s
	}

	f.mutex.RLock()
	if folded, exists := f.folded[s]; exists {
		f.mutex.RUnlock()
		return folded
	}
	f.mutex.RUnlock()

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if folded, exists := f.folded[s]; exists {
		return folded
	}

	// cases.Caser carries transform state, so it is only used under the write lock
	folded := f.caser.String(s)
	if len(f.folded) < maxEntries {
		f.folded[s] = folded
	}
	return folded
}

// Prefold memoizes a set of strings ahead of parsing
func (f *Folder) Prefold(values []string) {
	for _, v := range values {
		_ = f.Fold(v)
	}
}

// Len returns the number of memoized entries.
func (f *Folder) Len() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return len(f.folded)
}

// Clear drops all memoized entries (useful for testing)
func (f *Folder) Clear() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	for k := range f.folded {
		delete(f.folded, k)
	}
}

func isFoldedASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x80 || (c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

// BooleanVocabulary lists the accepted long boolean values, prefolded at init
var BooleanVocabulary = []string{"on", "y", "yes", "off", "n", "no", "ON", "Y", "YES", "OFF", "N", "NO"}

// Global is the process-wide folder used by easyparse.
var Global *Folder

//nolint:gochecknoinits // Global folder requires init for prefolding
func init() {
	Global = NewFolder(128)
	Global.Prefold(BooleanVocabulary)
}

// Fold folds a string using the global folder
func Fold(s string) string {
	return Global.Fold(s)
}

// Strings folds every element of values into a new slice
func Strings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Global.Fold(v)
	}
	return out
}
