package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/scrabble-go/internal/model"
)

// Service provides word validation against a loaded word list. The zero
// state is unloaded; an unloaded dictionary accepts every word so games can
// run without one.
type Service struct {
	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// New creates a new dictionary service
func New() *Service {
	return &Service{
		words: make(map[string]struct{}),
	}
}

// LoadFromFile loads dictionary words from a file (one word per line)
func (s *Service) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var words []string
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	s.LoadWords(words)
	return nil
}

// LoadFromURL fetches a word list (one word per line) over HTTP
func (s *Service) LoadFromURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch word list: unexpected status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	var words []string
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	s.LoadWords(words)
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		// Store lowercase for case-insensitive matching
		s.words[strings.ToLower(word)] = struct{}{}
	}
	s.loaded = true
}

// IsValidWord checks if a word exists in the dictionary.
// Words must be at least 2 characters.
func (s *Service) IsValidWord(word string) bool {
	if len(word) < 2 {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// IllegalWords returns the words from the given set that are not in the
// dictionary. An unloaded dictionary rejects nothing.
func (s *Service) IllegalWords(words []model.Word) []string {
	if !s.IsLoaded() {
		return nil
	}

	var illegal []string
	for _, word := range words {
		if !s.IsValidWord(word.Text) {
			illegal = append(illegal, word.Text)
		}
	}
	return illegal
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
