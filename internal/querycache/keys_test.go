package querycache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_ExcludesPageAndSize(t *testing.T) {
	base := PageRequest{Page: 0, Size: 30, Direction: "desc", Filters: map[string]string{"status": "PENDING"}}
	next := PageRequest{Page: 3, Size: 10, Direction: "desc", Filters: map[string]string{"status": "PENDING"}}

	assert.Equal(t, Fingerprint("event-requests", base), Fingerprint("event-requests", next),
		"all pages of one filtered list share a key")
}

func TestFingerprint_FilterSensitive(t *testing.T) {
	pending := PageRequest{Direction: "desc", Filters: map[string]string{"status": "PENDING"}}
	approved := PageRequest{Direction: "desc", Filters: map[string]string{"status": "APPROVED"}}
	asc := PageRequest{Direction: "asc", Filters: map[string]string{"status": "PENDING"}}

	k := Fingerprint("event-requests", pending)
	assert.NotEqual(t, k, Fingerprint("event-requests", approved))
	assert.NotEqual(t, k, Fingerprint("event-requests", asc))
	assert.NotEqual(t, k, Fingerprint("my-event-requests", pending))
}

func TestFingerprint_StableAcrossMapOrder(t *testing.T) {
	a := PageRequest{Filters: map[string]string{"gender": "ANY", "regionId": "3", "minAge": "10"}}
	b := PageRequest{Filters: map[string]string{"minAge": "10", "gender": "ANY", "regionId": "3"}}

	for i := 0; i < 50; i++ {
		assert.Equal(t, Fingerprint("events", a), Fingerprint("events", b))
	}
}
