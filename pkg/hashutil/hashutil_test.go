package hashutil_test

import (
	"testing"

	"github.com/rohmanhakim/lyrics-service/pkg/hashutil"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	first := hashutil.Fingerprint("Just gonna stand there and watch me burn")
	second := hashutil.Fingerprint("Just gonna stand there and watch me burn")
	assert.Equal(t, first, second)
}

func TestFingerprint_Length(t *testing.T) {
	assert.Len(t, hashutil.Fingerprint(""), 12)
	assert.Len(t, hashutil.Fingerprint("some lyrics"), 12)
}

func TestFingerprint_DistinguishesContent(t *testing.T) {
	assert.NotEqual(t,
		hashutil.Fingerprint("verse one"),
		hashutil.Fingerprint("verse two"),
	)
}
