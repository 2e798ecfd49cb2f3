package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaduk2001/selling-sub001/internal/service/reservations/models"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
)

type fakeSweeper struct {
	calls  atomic.Int32
	err    error
	result models.SweepResult
}

func (f *fakeSweeper) Sweep(context.Context) (*models.SweepResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	res := f.result
	return &res, nil
}

func TestNewWorker_InvalidSchedule(t *testing.T) {
	_, err := NewWorker(&fakeSweeper{}, "every now and then", logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestNewWorker_DefaultSchedule(t *testing.T) {
	w, err := NewWorker(&fakeSweeper{}, "", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule, w.schedule)
}

func TestWorker_RunOnce(t *testing.T) {
	s := &fakeSweeper{result: models.SweepResult{Expired: 2, ClaimsDeleted: 120}}
	w, err := NewWorker(s, "@hourly", logger.Nop())
	require.NoError(t, err)

	w.RunOnce(context.Background())
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestWorker_RunOnce_ErrorIsNotFatal(t *testing.T) {
	s := &fakeSweeper{err: errors.New("db is down")}
	w, err := NewWorker(s, "@hourly", logger.Nop())
	require.NoError(t, err)

	assert.NotPanics(t, func() { w.RunOnce(context.Background()) })
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestWorker_StartStop_RunsOnSchedule(t *testing.T) {
	s := &fakeSweeper{}
	w, err := NewWorker(s, "@every 1s", logger.Nop())
	require.NoError(t, err)

	w.Start()
	require.Eventually(t, func() bool { return s.calls.Load() > 0 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	w.Stop(ctx)
}
