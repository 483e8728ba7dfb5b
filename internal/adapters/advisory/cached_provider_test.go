package advisory

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/ayurvedaclinic/backend/internal/adapters/cache"
	"github.com/zatekoja/ayurvedaclinic/backend/internal/domain/entities"
	redisclient "github.com/zatekoja/ayurvedaclinic/backend/internal/infrastructure/clients/redis"
)

type countingProvider struct {
	searches int
	err      error
}

func (c *countingProvider) Search(ctx context.Context, query string) (*entities.SearchResponse, error) {
	c.searches++
	if c.err != nil {
		return nil, c.err
	}
	return &entities.SearchResponse{
		Content: "About " + query,
		Sources: []entities.GroundingSource{{Title: "Source", URI: "https://example.org"}},
	}, nil
}

func (c *countingProvider) PatientInsight(ctx context.Context, patient *entities.Patient) (string, error) {
	return "insight", nil
}

func (c *countingProvider) DoshaAnalysis(ctx context.Context, patient *entities.Patient) (string, error) {
	return "dosha", nil
}

func (c *countingProvider) WellnessPlan(ctx context.Context, patient *entities.Patient) (string, error) {
	return "plan", nil
}

func TestSearchCacheKey(t *testing.T) {
	assert.Equal(t, "search:holy basil", searchCacheKey("  Holy   BASIL "))
}

func TestCachedProvider_CachesSearch(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachedProvider(inner, cache.NewMemoryAdapter(), 60, nil)
	ctx := context.Background()

	first, err := p.Search(ctx, "Tulsi")
	require.NoError(t, err)
	second, err := p.Search(ctx, "  tulsi ")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.searches)
	assert.Equal(t, first, second)
}

func TestCachedProvider_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingProvider{}
	p := NewCachedProvider(inner, cache.NewRedisAdapter(redisclient.Wrap(rdb), "advisory:"), 60, nil)
	ctx := context.Background()

	_, err := p.Search(ctx, "neem")
	require.NoError(t, err)
	assert.True(t, mr.Exists("advisory:search:neem"))

	_, err = p.Search(ctx, "NEEM")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.searches)
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("upstream down")}
	p := NewCachedProvider(inner, cache.NewMemoryAdapter(), 60, nil)
	ctx := context.Background()

	_, err := p.Search(ctx, "brahmi")
	assert.Error(t, err)

	inner.err = nil
	resp, err := p.Search(ctx, "brahmi")
	require.NoError(t, err)
	assert.Equal(t, "About brahmi", resp.Content)
	assert.Equal(t, 2, inner.searches)
}

func TestCachedProvider_Disabled(t *testing.T) {
	inner := &countingProvider{}
	p := NewCachedProvider(inner, cache.NewMemoryAdapter(), 0, nil)

	_, _ = p.Search(context.Background(), "amla")
	_, _ = p.Search(context.Background(), "amla")

	assert.Equal(t, 2, inner.searches)
}

func TestCachedProvider_PassesPatientCalls(t *testing.T) {
	p := NewCachedProvider(&countingProvider{}, cache.NewMemoryAdapter(), 60, nil)

	text, err := p.DoshaAnalysis(context.Background(), &entities.Patient{ID: "p1"})

	require.NoError(t, err)
	assert.Equal(t, "dosha", text)
}
