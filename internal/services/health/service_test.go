package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestStatusWithoutDatabase(t *testing.T) {
	status, ok := NewService(nil).Status(context.Background())
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"ok": true, "database": "memory"}, status)
}

func TestStatusDatabaseReachable(t *testing.T) {
	status, ok := NewService(fakePinger{}).Status(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "postgres", status["database"])
}

func TestStatusDatabaseDown(t *testing.T) {
	status, ok := NewService(fakePinger{err: errors.New("dial tcp: refused")}).Status(context.Background())
	assert.False(t, ok)
	assert.Equal(t, false, status["ok"])
	assert.Equal(t, "unreachable", status["database"])
}
