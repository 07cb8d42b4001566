package search

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultMinLen   = 2
	DefaultLimit    = 5
)

// Searcher is the part of the catalog client the suggester needs.
type Searcher interface {
	SearchProducts(ctx context.Context, query string) (*models.ProductPage, error)
}

type Options struct {
	Debounce time.Duration
	MinLen   int
	Limit    int
}

// Suggester serves type-ahead suggestions for one session. Each call to
// Suggest supersedes the calls before it: only the most recently issued query
// may produce a result, whatever order the catalog answers in.
type Suggester struct {
	searcher Searcher
	opts     Options

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	latest  *models.Suggestions
	applied uint64
}

func NewSuggester(searcher Searcher, opts Options) *Suggester {
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.MinLen <= 0 {
		opts.MinLen = DefaultMinLen
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	return &Suggester{searcher: searcher, opts: opts}
}

// Suggest waits for the debounce delay, then searches for query. It returns a
// SUPERSEDED AppError when a newer call arrived in the meantime. Queries
// shorter than the minimum length clear the suggestions immediately without
// calling the catalog.
func (s *Suggester) Suggest(ctx context.Context, query string) (*models.Suggestions, error) {

	query = strings.TrimSpace(query)

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	seq := s.issue(cancel)

	if utf8.RuneCountInString(query) < s.opts.MinLen {
		result := &models.Suggestions{Seq: seq, Query: query, Products: []models.Product{}}
		if !s.apply(seq, result) {
			return nil, superseded(seq)
		}
		metrics.IncSuggestion("short")
		return result, nil
	}

	if s.opts.Debounce > 0 {
		timer := time.NewTimer(s.opts.Debounce)
		select {
		case <-timer.C:
		case <-fetchCtx.Done():
			timer.Stop()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, superseded(seq)
		}
	}

	if !s.isLatest(seq) {
		return nil, superseded(seq)
	}

	page, err := s.searcher.SearchProducts(fetchCtx, query)

	if !s.isLatest(seq) {
		return nil, superseded(seq)
	}

	if err != nil {
		// the view drops whatever it showed when a search fails
		s.apply(seq, &models.Suggestions{Seq: seq, Query: query, Products: []models.Product{}})
		metrics.IncSuggestion("error")
		return nil, err
	}

	products := page.Products
	if len(products) > s.opts.Limit {
		products = products[:s.opts.Limit]
	}
	if products == nil {
		products = []models.Product{}
	}

	result := &models.Suggestions{Seq: seq, Query: query, Products: products}
	if !s.apply(seq, result) {
		return nil, superseded(seq)
	}

	metrics.IncSuggestion("applied")

	return result, nil
}

// Latest returns the most recently applied suggestions, or nil.
func (s *Suggester) Latest() *models.Suggestions {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latest
}

// Seq returns the last issued sequence number.
func (s *Suggester) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seq
}

func (s *Suggester) issue(cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	s.seq++
	s.cancel = cancel

	return s.seq
}

func (s *Suggester) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return seq == s.seq
}

func (s *Suggester) apply(seq uint64, result *models.Suggestions) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || seq < s.applied {
		return false
	}

	s.latest = result
	s.applied = seq

	return true
}

func superseded(seq uint64) error {
	metrics.IncSuggestion("superseded")

	return errors.SupersededError("Suggestion request superseded by a newer query").
		WithDetail("seq " + strconv.FormatUint(seq, 10))
}
