// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package orderedset provides a deduplicating set that remembers the order
// in which members were first added.
package orderedset

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Set is a collection of unique values iterated in insertion order.
//
// Set is not safe for concurrent use.
type Set[T comparable] struct {
	m *orderedmap.OrderedMap[T, struct{}]
}

// New returns a set seeded with values. Duplicates in values are ignored.
func New[T comparable](values ...T) *Set[T] {
	s := &Set[T]{m: orderedmap.New[T, struct{}]()}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
// Re-adding an existing value keeps its original position.
func (s *Set[T]) Add(v T) bool {
	if _, present := s.m.Get(v); present {
		return false
	}
	s.m.Set(v, struct{}{})
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, present := s.m.Get(v)
	return present
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Values returns the members in insertion order.
func (s *Set[T]) Values() []T {
	if s.Len() == 0 {
		return nil
	}
	out := make([]T, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
