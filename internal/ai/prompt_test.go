package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillwrite/stillwrite-backend/internal/ratelimit"
)

type fakeCompleter struct {
	calls    int
	lastUser string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastUser = user
	return "What surprised you today?", nil
}

func TestSuggest_NotConfigured(t *testing.T) {
	limiter := ratelimit.NewWithClock(time.Now)
	svc := NewPromptService(nil, limiter)

	assert.False(t, svc.Configured())
	_, err := svc.Suggest(context.Background(), "u1", "some text")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSuggest_DailyQuota(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewWithClock(func() time.Time { return now })
	fake := &fakeCompleter{}
	svc := NewPromptService(fake, limiter)

	for i := 0; i < DailyPromptLimit; i++ {
		prompt, err := svc.Suggest(context.Background(), "u1", "today I wrote")
		require.NoError(t, err)
		assert.NotEmpty(t, prompt)
	}

	_, err := svc.Suggest(context.Background(), "u1", "one more")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, DailyPromptLimit, fake.calls, "denied calls must not reach the LLM")

	// Another user has their own budget
	_, err = svc.Suggest(context.Background(), "u2", "different user")
	assert.NoError(t, err)

	// The next day the budget is back
	now = now.Add(25 * time.Hour)
	_, err = svc.Suggest(context.Background(), "u1", "new day")
	assert.NoError(t, err)
}

func TestSuggest_BlankContentGetsPlaceholder(t *testing.T) {
	limiter := ratelimit.NewWithClock(time.Now)
	fake := &fakeCompleter{}
	svc := NewPromptService(fake, limiter)

	_, err := svc.Suggest(context.Background(), "u1", "   ")
	require.NoError(t, err)
	assert.Equal(t, "(the page is still blank)", fake.lastUser)
}

func TestSuggest_TruncatesLongContent(t *testing.T) {
	limiter := ratelimit.NewWithClock(time.Now)
	fake := &fakeCompleter{}
	svc := NewPromptService(fake, limiter)

	long := make([]byte, maxContextChars*2)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Suggest(context.Background(), "u1", string(long))
	require.NoError(t, err)
	assert.Len(t, fake.lastUser, maxContextChars)
}
