package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriteTimeout(t *testing.T) {
	tests := []struct {
		name     string
		advisory time.Duration
		want     time.Duration
	}{
		{"default gemini timeout", 20 * time.Second, 25 * time.Second},
		{"short gemini timeout", 5 * time.Second, 15 * time.Second},
		{"unset", 0, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := writeTimeout(tt.advisory)
			assert.Equal(t, tt.want, got)
			assert.Greater(t, got, tt.advisory)
		})
	}
}
