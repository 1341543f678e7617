package kv

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lock takes key with SetNX and returns a function that releases it. The
// TTL bounds how long a crashed holder can keep the key. Release only
// deletes the key while it still holds this holder's token, so a holder
// whose TTL ran out cannot drop a lock someone else has taken since.
func Lock(ctx context.Context, s Store, key string, ttl time.Duration) (func(), error) {
	token := []byte(uuid.NewString())
	ok, err := s.SetNX(ctx, key, token, ttl)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		// Release must not depend on the caller's context still being live.
		_, _ = s.DeleteIfValue(context.WithoutCancel(ctx), key, token)
	}, nil
}
