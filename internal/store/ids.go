package store

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

const (
	slugMaxLen    = 20
	idAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxIDAttempts = 5
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// NewEventID derives a human-legible id from the event name plus a short
// random suffix. taken reports whether an id is already in use; generation
// retries until the id is free.
func NewEventID(name string, taken func(id string) bool) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > slugMaxLen {
		slug = strings.TrimRight(slug[:slugMaxLen], "-")
	}
	if slug == "" {
		slug = "event"
	}

	for i := 0; i < maxIDAttempts; i++ {
		id := slug + "-" + randomSuffix(6)
		if taken == nil || !taken(id) {
			return id
		}
	}
	// Repeated suffix collisions; widen the id with a timestamp.
	return fmt.Sprintf("%s-%d-%s", slug, time.Now().UnixMilli(), randomSuffix(6))
}

// NewMediaID is a timestamp plus a short random suffix, newest-sortable and
// unique enough for demo volume.
func NewMediaID() string {
	return fmt.Sprintf("media-%d-%s", time.Now().UnixMilli(), randomSuffix(9))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
