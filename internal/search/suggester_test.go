package search_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	respond func(ctx context.Context, query string) (*models.ProductPage, error)
}

func (f *fakeSearcher) SearchProducts(ctx context.Context, query string) (*models.ProductPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	return f.respond(ctx, query)
}

func (f *fakeSearcher) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.queries...)
}

func pageOf(n int) *models.ProductPage {
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, models.Product{ID: i, Title: "Product " + strconv.Itoa(i)})
	}

	return &models.ProductPage{Products: products, Total: n, Limit: n}
}

func TestSuggest_ShortQuery(t *testing.T) {
	searcher := &fakeSearcher{respond: func(context.Context, string) (*models.ProductPage, error) {
		return pageOf(3), nil
	}}
	suggester := search.NewSuggester(searcher, search.Options{Debounce: 0, MinLen: 2, Limit: 5})

	_, err := suggester.Suggest(t.Context(), "phone")
	require.NoError(t, err)
	require.Len(t, suggester.Latest().Products, 3)

	for _, q := range []string{"p", "", "  a  "} {
		result, err := suggester.Suggest(t.Context(), q)

		require.NoError(t, err)
		assert.Empty(t, result.Products)
		assert.Empty(t, suggester.Latest().Products)
	}

	assert.Equal(t, []string{"phone"}, searcher.calls())
}

func TestSuggest_LimitsResults(t *testing.T) {
	searcher := &fakeSearcher{respond: func(context.Context, string) (*models.ProductPage, error) {
		return pageOf(8), nil
	}}
	suggester := search.NewSuggester(searcher, search.Options{Limit: 5})

	result, err := suggester.Suggest(t.Context(), "ph")

	require.NoError(t, err)
	assert.Len(t, result.Products, 5)
	assert.Equal(t, "ph", result.Query)
	assert.Equal(t, uint64(1), result.Seq)
}

func TestSuggest_ErrorClearsSuggestions(t *testing.T) {
	fail := false
	searcher := &fakeSearcher{respond: func(context.Context, string) (*models.ProductPage, error) {
		if fail {
			return nil, appErrors.NetworkError("Catalog unreachable")
		}
		return pageOf(2), nil
	}}
	suggester := search.NewSuggester(searcher, search.Options{})

	_, err := suggester.Suggest(t.Context(), "lap")
	require.NoError(t, err)
	require.Len(t, suggester.Latest().Products, 2)

	fail = true
	result, err := suggester.Suggest(t.Context(), "lapt")

	assert.Nil(t, result)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNetwork))
	assert.Empty(t, suggester.Latest().Products)
	assert.Equal(t, "lapt", suggester.Latest().Query)
}

func TestSuggest_OnlyLatestQueryIsApplied(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	searcher := &fakeSearcher{respond: func(_ context.Context, query string) (*models.ProductPage, error) {
		if query == "ph" {
			close(started)
			<-release
			return pageOf(4), nil
		}
		return pageOf(1), nil
	}}
	suggester := search.NewSuggester(searcher, search.Options{})

	var (
		wg       sync.WaitGroup
		staleErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, staleErr = suggester.Suggest(context.Background(), "ph")
	}()

	<-started
	latest, err := suggester.Suggest(t.Context(), "pho")
	require.NoError(t, err)

	// the older request answers after the newer one
	close(release)
	wg.Wait()

	assert.True(t, appErrors.HasCode(staleErr, appErrors.ErrCodeSuperseded))
	assert.Equal(t, latest, suggester.Latest())
	assert.Equal(t, "pho", suggester.Latest().Query)
	assert.Len(t, suggester.Latest().Products, 1)
}

func TestSuggest_DebounceDropsSupersededQueries(t *testing.T) {
	searcher := &fakeSearcher{respond: func(context.Context, string) (*models.ProductPage, error) {
		return pageOf(2), nil
	}}
	suggester := search.NewSuggester(searcher, search.Options{Debounce: 200 * time.Millisecond})

	errs := make(chan error, 2)
	for _, q := range []string{"la", "lap"} {
		want := suggester.Seq() + 1
		go func() {
			_, err := suggester.Suggest(context.Background(), q)
			errs <- err
		}()
		require.Eventually(t, func() bool { return suggester.Seq() == want }, time.Second, time.Millisecond)
	}

	result, err := suggester.Suggest(t.Context(), "lapt")
	require.NoError(t, err)
	assert.Equal(t, "lapt", result.Query)

	for range 2 {
		assert.True(t, appErrors.HasCode(<-errs, appErrors.ErrCodeSuperseded))
	}

	assert.Equal(t, []string{"lapt"}, searcher.calls())
}

func TestSuggest_CancelledContext(t *testing.T) {
	searcher := &fakeSearcher{respond: func(context.Context, string) (*models.ProductPage, error) {
		return pageOf(1), nil
	}}
	suggester := search.NewSuggester(searcher, search.Options{Debounce: time.Second})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	result, err := suggester.Suggest(ctx, "phone")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, searcher.calls())
}
