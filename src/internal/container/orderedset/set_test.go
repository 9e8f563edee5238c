// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package orderedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/container/orderedset"
)

func TestSet(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Insertion order preserved",
			testFunc: func(t *testing.T) {
				s := orderedset.New("c", "a", "b")
				assert.Equal(t, []string{"c", "a", "b"}, s.Values())
			},
		},
		{
			name: "Duplicates keep first position",
			testFunc: func(t *testing.T) {
				s := orderedset.New[string]()
				assert.True(t, s.Add("x"))
				assert.True(t, s.Add("y"))
				assert.False(t, s.Add("x"))
				assert.Equal(t, 2, s.Len())
				assert.Equal(t, []string{"x", "y"}, s.Values())
			},
		},
		{
			name: "Contains",
			testFunc: func(t *testing.T) {
				s := orderedset.New(1, 2, 3)
				assert.True(t, s.Contains(2))
				assert.False(t, s.Contains(4))
			},
		},
		{
			name: "Empty set",
			testFunc: func(t *testing.T) {
				var s *orderedset.Set[string]
				assert.Zero(t, s.Len())
				assert.Nil(t, s.Values())
				assert.Nil(t, orderedset.New[int]().Values())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}
