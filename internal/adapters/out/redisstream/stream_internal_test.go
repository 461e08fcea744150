package redisstream

import (
	"context"
	"errors"
	"testing"

	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestToEntries(t *testing.T) {
	messages := []redis.XMessage{
		{ID: "1-0", Values: map[string]any{OrderIDField: " 6f1c2b9e-0d7a-4a55-9c1e-2f3b4c5d6e7f "}},
		{ID: "2-0", Values: map[string]any{"other": "x"}},
		{ID: "3-0", Values: map[string]any{OrderIDField: 42}},
	}

	got := toEntries(messages)

	assert.Equal(t, []ports.StreamEntry{
		{ID: "1-0", OrderID: "6f1c2b9e-0d7a-4a55-9c1e-2f3b4c5d6e7f"},
		{ID: "2-0"},
		{ID: "3-0"},
	}, got)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))
	assert.ErrorIs(t, classify(context.Canceled), context.Canceled)
	assert.NotErrorIs(t, classify(context.Canceled), errs.ErrUnavailable)
	assert.ErrorIs(t, classify(errors.New("dial tcp: connection refused")), errs.ErrUnavailable)
}
