package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	if p.err != nil {
		return 0, p.err
	}
	return 2, nil
}

func TestSessionJanitor_PurgeOnce(t *testing.T) {
	purger := &countingPurger{}
	svc := NewSessionJanitorService(time.Hour, quietLogger(), purger)
	defer svc.Stop()

	n, err := svc.PurgeOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	purger.err = errors.New("db down")
	_, err = svc.PurgeOnce(context.Background())
	assert.Error(t, err)
}

func TestSessionJanitor_LoopAndStop(t *testing.T) {
	purger := &countingPurger{}
	svc := NewSessionJanitorService(5*time.Millisecond, quietLogger(), purger)

	assert.Eventually(t, func() bool { return purger.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	svc.Stop()
	svc.Stop()
	after := purger.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, purger.calls.Load())
}

func TestSessionJanitor_AllPurgersRun(t *testing.T) {
	failing := &countingPurger{err: errors.New("db down")}
	snapshots := &countingPurger{}
	svc := NewSessionJanitorService(time.Hour, quietLogger(), failing, snapshots)
	defer svc.Stop()

	n, err := svc.PurgeOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, int32(1), snapshots.calls.Load())
}
