package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessorsDefaultToZeroValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ClientIP(ctx))
	assert.Empty(t, UserAgent(ctx))
	assert.Equal(t, ForwardedCredentials{}, Credentials(ctx))
	assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
}

func TestDetachKeepsValuesButNotCancellation(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	parent, cancel := context.WithCancel(context.Background())
	parent = WithRequestID(parent, "req-1")
	parent = WithTime(parent, fixed)
	parent = WithCredentials(parent, ForwardedCredentials{Cookie: "sid=abc"})

	detached := Detach(parent)
	cancel()

	assert.Error(t, parent.Err())
	assert.NoError(t, detached.Err())
	assert.Equal(t, "req-1", RequestID(detached))
	assert.Equal(t, fixed, Now(detached))
	assert.Equal(t, "sid=abc", Credentials(detached).Cookie)
}
