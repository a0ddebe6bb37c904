// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestParseLetter(t *testing.T) {
	tests := []struct {
		in      string
		want    byte
		wantErr bool
	}{
		{"E", 'E', false},
		{"e", 'E', false},
		{"Z:", 'Z', false},
		{"h:", 'H', false},
		{"", 0, true},
		{"EF", 0, true},
		{"E:F", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLetter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLetter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseLetter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSlot(t *testing.T) {
	if _, err := parseSlot("2", 1); err == nil {
		t.Error("slot 2 accepted with max 1")
	}
	if _, err := parseSlot("x", 1); err == nil {
		t.Error("non-numeric slot accepted")
	}
	got, err := parseSlot("1", 1)
	if err != nil || got != 1 {
		t.Errorf("parseSlot(1) = %d, %v", got, err)
	}
}
