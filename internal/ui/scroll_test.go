package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearBottom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		contentHeight int
		visibleHeight int
		scrollOffset  int
		threshold     int
		want          bool
	}{
		{"well above threshold", 1000, 400, 500, 30, false},
		{"just outside threshold", 1000, 400, 569, 30, false},
		{"exactly at threshold boundary", 1000, 400, 570, 30, true},
		{"past threshold", 1000, 400, 571, 30, true},
		{"at exact bottom", 1000, 400, 600, 30, true},
		{"zero threshold not at bottom", 1000, 400, 599, 0, false},
		{"zero threshold at exact bottom", 1000, 400, 600, 0, true},
		{"content shorter than view", 100, 400, 0, 30, true},
		{"threshold larger than content", 100, 10, 0, 200, true},
		{"empty content", 0, 10, 0, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NearBottom(tt.contentHeight, tt.visibleHeight, tt.scrollOffset, tt.threshold)
			assert.Equal(t, tt.want, got)
		})
	}
}
