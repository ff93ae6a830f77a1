package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithinCancelWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"well ahead", now.Add(72 * time.Hour), true},
		{"exactly 24h is still allowed", now.Add(24 * time.Hour), true},
		{"one second under 24h", now.Add(24*time.Hour - time.Second), false},
		{"same day", now.Add(2 * time.Hour), false},
		{"already started", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinCancelWindow(tt.start, now))
		})
	}
}
