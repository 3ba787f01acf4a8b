package timer

// StartCount exposes the reference count to tests
func (t *RepeatingTimer) StartCount() int64 {
	return t.startCount.Load()
}

// DisposeCount exposes the dispose count to tests
func (t *RepeatingTimer) DisposeCount() int64 {
	return t.disposeCount.Load()
}

// IsDisposed exposes the disposal predicate to tests
func (t *RepeatingTimer) IsDisposed() bool {
	return t.isDisposed()
}

// HasHandle tests if the timer currently holds an underlying handle
func (t *RepeatingTimer) HasHandle() bool {
	t.handleLock.Lock()
	defer t.handleLock.Unlock()
	return t.handle != nil
}

// Tick runs the scheduler callback directly
func (t *RepeatingTimer) Tick() {
	t.tick()
}
