// SPDX-License-Identifier: Apache-2.0

package span

import (
	"fmt"
	"testing"
)

func TestSpanContains(t *testing.T) {
	tests := []struct {
		a, b Span[uint32]
		want bool
	}{
		{a: Span[uint32]{5, 10}, b: Span[uint32]{6, 10}, want: true},
		{a: Span[uint32]{4, 9}, b: Span[uint32]{1, 5}, want: false},
		{a: Span[uint32]{1, 3}, b: Span[uint32]{1, 3}, want: true},
		{a: Span[uint32]{0, 5}, b: Span[uint32]{6, 10}, want: false},
		{a: Span[uint32]{0, 5}, b: Span[uint32]{0, 5}, want: true},
		{a: Span[uint32]{0, 5}, b: Span[uint32]{3, 5}, want: true},
		{a: Span[uint32]{0, 5}, b: Span[uint32]{3, 6}, want: false},
		{a: Span[uint32]{0, 5}, b: Span[uint32]{2, 3}, want: true},
	}

	for _, tt := range tests {
		result := "contains"
		if !tt.want {
			result = "does not contain"
		}

		name := fmt.Sprintf("[%d, %d) %s [%d, %d)",
			tt.a.Start, tt.a.End, result, tt.b.Start, tt.b.End)

		t.Run(name, func(t *testing.T) {
			got := tt.a.Contains(tt.b)

			if got != tt.want {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSpanLen(t *testing.T) {
	tests := []struct {
		s    Span[uint64]
		want uint64
	}{
		{Span[uint64]{0, 16}, 16},
		{Span[uint64]{5, 5}, 0},
		{Span[uint64]{7, 5}, 0},
	}

	for _, tt := range tests {
		if got := tt.s.Len(); got != tt.want {
			t.Errorf("Span[%d,%d).Len() = %d, want %d",
				tt.s.Start, tt.s.End, got, tt.want)
		}
	}
}
