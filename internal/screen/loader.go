package screen

import (
	"context"
	"sync"
	"time"
)

type loaderKey struct {
	session string
	screen  string
}

type snapshot struct {
	token uint64
	value interface{}
}

// Loader applies last-request-wins to screen loads. Each load takes a
// monotonic token; only the newest token for a (session, screen) may replace
// the retained snapshot, and an orphaned load (cancelled context) never does.
type Loader struct {
	mu        sync.Mutex
	seq       uint64
	latest    map[loaderKey]uint64
	snapshots map[loaderKey]snapshot
	// lastUsed drives PurgeIdle; expired sessions never call Forget.
	lastUsed map[loaderKey]time.Time
	now      func() time.Time
}

func NewLoader() *Loader {
	return &Loader{
		latest:    make(map[loaderKey]uint64),
		snapshots: make(map[loaderKey]snapshot),
		lastUsed:  make(map[loaderKey]time.Time),
		now:       time.Now,
	}
}

type Ticket struct {
	key   loaderKey
	token uint64
}

func (l *Loader) Begin(sessionID, screen string) Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	k := loaderKey{session: sessionID, screen: screen}
	l.latest[k] = l.seq
	l.lastUsed[k] = l.now()
	return Ticket{key: k, token: l.seq}
}

// Complete stores value when t is still the newest load. It reports whether
// the value was kept.
func (l *Loader) Complete(ctx context.Context, t Ticket, value interface{}) bool {
	if ctx.Err() != nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.latest[t.key] != t.token {
		return false
	}
	if cur, ok := l.snapshots[t.key]; ok && cur.token > t.token {
		return false
	}
	l.snapshots[t.key] = snapshot{token: t.token, value: value}
	l.lastUsed[t.key] = l.now()
	return true
}

func (l *Loader) Snapshot(sessionID, screen string) (interface{}, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := loaderKey{session: sessionID, screen: screen}
	s, ok := l.snapshots[k]
	if ok {
		l.lastUsed[k] = l.now()
	}
	return s.value, ok
}

// Forget drops everything held for a session, e.g. on logout.
func (l *Loader) Forget(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.latest {
		if k.session == sessionID {
			delete(l.latest, k)
		}
	}
	for k := range l.snapshots {
		if k.session == sessionID {
			delete(l.snapshots, k)
		}
	}
	for k := range l.lastUsed {
		if k.session == sessionID {
			delete(l.lastUsed, k)
		}
	}
}

// PurgeIdle drops every screen entry not used since cutoff and returns how
// many were dropped.
func (l *Loader) PurgeIdle(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	dropped := 0
	for k, used := range l.lastUsed {
		if !used.Before(cutoff) {
			continue
		}
		delete(l.lastUsed, k)
		delete(l.latest, k)
		delete(l.snapshots, k)
		dropped++
	}
	return dropped
}

// Len is the number of (session, screen) entries held.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lastUsed)
}

// IdlePurger adapts a Loader to the session janitor: entries idle for longer
// than the threshold belong to sessions that are gone or abandoned.
type IdlePurger struct {
	loader    *Loader
	threshold time.Duration
}

func NewIdlePurger(l *Loader, threshold time.Duration) *IdlePurger {
	return &IdlePurger{loader: l, threshold: threshold}
}

func (p *IdlePurger) PurgeExpired(_ context.Context) (int64, error) {
	return int64(p.loader.PurgeIdle(p.loader.now().Add(-p.threshold))), nil
}

// Result of a load: Value is fresh when Err is nil, otherwise the retained
// snapshot (if any) with Stale set.
type Result[T any] struct {
	Value T
	Has   bool
	Stale bool
	Err   error
}

// Load runs fetch under the loader's policy for one screen.
func Load[T any](ctx context.Context, l *Loader, sessionID, screen string, fetch func(context.Context) (T, error)) Result[T] {
	ticket := l.Begin(sessionID, screen)
	value, err := fetch(ctx)
	if err == nil {
		l.Complete(ctx, ticket, value)
		return Result[T]{Value: value, Has: true}
	}

	res := Result[T]{Err: err, Stale: true}
	if prev, ok := l.Snapshot(sessionID, screen); ok {
		if v, ok := prev.(T); ok {
			res.Value = v
			res.Has = true
		}
	}
	return res
}
