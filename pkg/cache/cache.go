// Package cache provides the bounded memoization used by the resolvers.
// Entries are evicted by recency so a long-running process does not grow
// without bound.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Memo memoizes the result of a computation keyed by its arguments. Only
// successful results are stored; failures stay recomputable.
type Memo[K comparable, V any] struct {
	lru *lru.Cache[K, V]
}

// New returns a memo holding at most size entries.
func New[K comparable, V any](size int) *Memo[K, V] {
	c, err := lru.New[K, V](size)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Memo[K, V]{lru: c}
}

// Do returns the cached value for key, computing and storing it on a miss.
// An error from compute is returned as-is and nothing is cached.
func (m *Memo[K, V]) Do(key K, compute func() (V, error)) (V, error) {
	if v, ok := m.lru.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	m.lru.Add(key, v)
	return v, nil
}

// Len returns the number of cached entries.
func (m *Memo[K, V]) Len() int {
	return m.lru.Len()
}
