package config

import (
	"bufio"
	"os"
	"strings"
)

// WordListModerator rejects text containing any blocked word. Matching
// is case-insensitive substring matching, which errs on the side of
// blocking.
type WordListModerator struct {
	blocked []string
}

// LoadWordListModerator reads a newline-separated blocked-word file.
// An empty path yields a moderator that allows everything.
func LoadWordListModerator(path string) (*WordListModerator, error) {
	m := &WordListModerator{}
	if path == "" {
		return m, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		m.blocked = append(m.blocked, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Allowed reports whether text passes moderation.
func (m *WordListModerator) Allowed(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range m.blocked {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
