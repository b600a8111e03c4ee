package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestCheckBasic(t *testing.T) {
	ok := NewHealthChecker(pingFunc(func(context.Context) error { return nil }))
	assert.Equal(t, "healthy", ok.CheckBasic(context.Background()).Status)

	down := NewHealthChecker(pingFunc(func(context.Context) error { return errors.New("refused") }))
	got := down.CheckBasic(context.Background())
	assert.Equal(t, "unhealthy", got.Status)
	assert.Equal(t, "unhealthy", got.Database.Status)
}

func TestCheckDetailed_IncludesDatabase(t *testing.T) {
	h := NewHealthChecker(pingFunc(func(context.Context) error { return nil }))
	got := h.CheckDetailed(context.Background())
	assert.Equal(t, "healthy", got.Status)
	assert.GreaterOrEqual(t, got.UptimeSeconds, int64(0))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 GB", formatBytes(2<<30))
}
