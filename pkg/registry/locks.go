package registry

import "sync"

// lockEntry holds a per-robot mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// lockTable hands out per-robot mutexes on demand and garbage collects them
// via reference counting once no operation holds or waits on them.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates the entry for an ID and increments its refcount.
// The caller must Lock entry.mu and later call release(id) after unlocking.
func (t *lockTable) acquire(id string) *lockEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.locks[id]
	if !ok {
		entry = &lockEntry{}
		t.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the refcount and drops the entry at zero.
func (t *lockTable) release(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.locks[id]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(t.locks, id)
	}
}

// withLock runs fn while holding the exclusive lock for one robot.
func (t *lockTable) withLock(id string, fn func()) {
	entry := t.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		t.release(id)
	}()
	fn()
}

// withPairLock runs fn while holding both robots' locks. Locks are always
// taken in lexicographic ID order so that concurrent attacks in opposite
// directions cannot deadlock. IDs must be distinct.
func (t *lockTable) withPairLock(a, b string, fn func()) {
	first, second := a, b
	if second < first {
		first, second = second, first
	}

	e1 := t.acquire(first)
	e1.mu.Lock()
	e2 := t.acquire(second)
	e2.mu.Lock()

	defer func() {
		e2.mu.Unlock()
		t.release(second)
		e1.mu.Unlock()
		t.release(first)
	}()
	fn()
}
