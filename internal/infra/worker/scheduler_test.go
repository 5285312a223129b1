package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReloader struct {
	calls   atomic.Int32
	err     error
	block   chan struct{}
	started chan struct{}
	ctxErr  error
}

func (r *stubReloader) Reload(ctx context.Context) error {
	r.calls.Add(1)
	if r.started != nil {
		close(r.started)
	}
	if r.block != nil {
		select {
		case <-r.block:
		case <-ctx.Done():
			r.ctxErr = ctx.Err()
			return ctx.Err()
		}
	}
	return r.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScheduler(t *testing.T, r Reloader, cfg ReloadConfig) *Scheduler {
	t.Helper()
	s, err := NewScheduler(r, cfg, testMetrics, quietLogger())
	require.NoError(t, err)
	return s
}

func TestNewScheduler_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Schedule = "nope"

	_, err := NewScheduler(&stubReloader{}, cfg, testMetrics, quietLogger())
	assert.Error(t, err)
}

func TestScheduler_RunOnce_Success(t *testing.T) {
	r := &stubReloader{}
	s := newTestScheduler(t, r, DefaultConfig())
	before := testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("success"))

	assert.True(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), r.calls.Load())
	assert.Equal(t, before+1, testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("success")))
}

func TestScheduler_RunOnce_Failure(t *testing.T) {
	r := &stubReloader{err: errors.New("store unavailable")}
	s := newTestScheduler(t, r, DefaultConfig())

	assert.False(t, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestScheduler_RunOnce_Timeout(t *testing.T) {
	r := &stubReloader{block: make(chan struct{})}
	cfg := DefaultConfig()
	s := newTestScheduler(t, r, cfg)
	// bypass Validate's lower bound to keep the test fast
	s.cfg.Timeout = 20 * time.Millisecond

	assert.False(t, s.RunOnce(context.Background()))
	assert.ErrorIs(t, r.ctxErr, context.DeadlineExceeded)
}

func TestScheduler_RunOnce_SkipsOverlap(t *testing.T) {
	r := &stubReloader{block: make(chan struct{}), started: make(chan struct{})}
	s := newTestScheduler(t, r, DefaultConfig())

	done := make(chan bool)
	go func() { done <- s.RunOnce(context.Background()) }()
	<-r.started

	assert.False(t, s.RunOnce(context.Background()))

	close(r.block)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), r.calls.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(t, &stubReloader{}, DefaultConfig())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestScheduler_Start_LogsOnce(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewScheduler(&stubReloader{}, DefaultConfig(), testMetrics, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "reload scheduler started"))
	assert.Contains(t, out, "schedule=\"0 * * * *\"")
	assert.Contains(t, out, "timeout=2m0s")
}
