package notion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientSatisfiesInterface(t *testing.T) {
	var _ Client = NewClient("test-token")
}

func TestRateLimitWaitHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("test-token")

	_, err := c.QueryDatabase(ctx, "db-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")

	_, err = c.CreatePage(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")

	_, err = c.UpdatePage(ctx, "page-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestWithRateLimitDisabled(t *testing.T) {
	c := NewClient("test-token", WithRateLimit(0)).(*apiClient)
	assert.Nil(t, c.limiter)
}

func TestWithRateLimitCustom(t *testing.T) {
	c := NewClient("test-token", WithRateLimit(10)).(*apiClient)
	require.NotNil(t, c.limiter)
	assert.EqualValues(t, 10, c.limiter.Limit())
	assert.Equal(t, 10, c.limiter.Burst())
}
