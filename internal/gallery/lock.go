package gallery

import "sync"

// ScrollLock suppresses background scrolling while a lightbox is open.
//
// Acquire returns the matching release function. Calling release more than
// once has no further effect.
type ScrollLock interface {
	Acquire() (release func())
}

// Lock is a counting ScrollLock. The background is locked while at least one
// acquisition is outstanding.
type Lock struct {
	mu       sync.Mutex
	holders  int
	acquired int
	released int
	onChange func(locked bool)
}

// NewLock returns a Lock that calls onChange (if non-nil) whenever the locked
// state flips.
func NewLock(onChange func(locked bool)) *Lock {
	return &Lock{onChange: onChange}
}

func (l *Lock) Acquire() func() {
	l.mu.Lock()
	l.holders++
	l.acquired++
	flipped := l.holders == 1
	cb := l.onChange
	l.mu.Unlock()
	if flipped && cb != nil {
		cb(true)
	}

	var once sync.Once
	return func() {
		once.Do(l.release)
	}
}

func (l *Lock) release() {
	l.mu.Lock()
	if l.holders == 0 {
		l.mu.Unlock()
		return
	}
	l.holders--
	l.released++
	flipped := l.holders == 0
	cb := l.onChange
	l.mu.Unlock()
	if flipped && cb != nil {
		cb(false)
	}
}

// Held reports whether the background is currently locked.
func (l *Lock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holders > 0
}

// Counts returns the total number of acquisitions and releases so far.
func (l *Lock) Counts() (acquired, released int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acquired, l.released
}

type nopLock struct{}

func (nopLock) Acquire() func() { return func() {} }

// NopLock is a ScrollLock with no effect.
var NopLock ScrollLock = nopLock{}
