package common

import (
	"sync"
	"time"
)

// InMemoryRateLimiter is the fallback request limiter used when Redis is
// disabled. It keeps a sliding window of request timestamps per key.
type InMemoryRateLimiter struct {
	store              map[string]*[]int64
	mutex              sync.Mutex
	expirationDuration time.Duration
}

func (l *InMemoryRateLimiter) Init(expirationDuration time.Duration) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.store == nil {
		l.store = make(map[string]*[]int64)
		l.expirationDuration = expirationDuration
		if expirationDuration > 0 {
			go l.clearExpiredItems()
		}
	}
}

func (l *InMemoryRateLimiter) clearExpiredItems() {
	for {
		time.Sleep(l.expirationDuration)
		l.mutex.Lock()
		now := time.Now().Unix()
		for key, timestamps := range l.store {
			if timestamps == nil || len(*timestamps) == 0 {
				delete(l.store, key)
				continue
			}
			if now-(*timestamps)[len(*timestamps)-1] >= int64(l.expirationDuration.Seconds()) {
				delete(l.store, key)
			}
		}
		l.mutex.Unlock()
	}
}

// Request reports whether another request under key is allowed given at most
// maxRequestNum requests per duration seconds.
func (l *InMemoryRateLimiter) Request(key string, maxRequestNum int, duration int64) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	now := time.Now().Unix()
	timestamps, ok := l.store[key]
	if !ok {
		timestamps = &[]int64{}
		l.store[key] = timestamps
	}
	cutoff := now - duration
	kept := (*timestamps)[:0]
	for _, t := range *timestamps {
		if t > cutoff {
			kept = append(kept, t)
		}
	}
	*timestamps = kept
	if len(*timestamps) >= maxRequestNum {
		return false
	}
	*timestamps = append(*timestamps, now)
	return true
}
