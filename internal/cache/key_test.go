package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyNormalization(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"punctuation and suffix", "Acme, Inc.", "acme inc"},
		{"capitalization", "ACME INC", "acme inc"},
		{"accents", "Café Motors", "cafe motors"},
		{"whitespace", "  Acme   Inc  ", "acme inc"},
		{"ampersand", "Smith & Sons", "smith sons"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Key("web_search", tt.a), Key("web_search", tt.b))
		})
	}
}

func TestKeyFormat(t *testing.T) {
	assert.Equal(t, "web_search_acmeinc", Key("web_search", "Acme, Inc."))
	assert.Equal(t, "news_scan_acmeinc", Key("news_scan", "Acme, Inc."))

	// Same company under different sources must never collide.
	assert.NotEqual(t, Key("web_search", "Acme"), Key("news_scan", "Acme"))
}

func TestIsExpired(t *testing.T) {
	maxAge := time.Hour

	t.Run("nil entry", func(t *testing.T) {
		assert.True(t, IsExpired(nil, maxAge))
	})

	t.Run("zero timestamp", func(t *testing.T) {
		assert.True(t, IsExpired(&Entry{}, maxAge))
	})

	t.Run("fresh", func(t *testing.T) {
		e := &Entry{Timestamp: time.Now().Add(-time.Minute)}
		assert.False(t, IsExpired(e, maxAge))
	})

	t.Run("exactly max age is expired", func(t *testing.T) {
		e := &Entry{Timestamp: time.Now().Add(-maxAge)}
		assert.True(t, IsExpired(e, maxAge))
	})

	t.Run("older than max age", func(t *testing.T) {
		e := &Entry{Timestamp: time.Now().Add(-2 * maxAge)}
		assert.True(t, IsExpired(e, maxAge))
	})
}
