package storage

import "context"

// TokenSource adapts a Store into the transport's token lookup. A
// missing or corrupted entry simply means "no session".
type TokenSource struct {
	Store Store
}

func (t *TokenSource) AuthToken(ctx context.Context) (string, bool) {
	if t == nil || t.Store == nil {
		return "", false
	}
	var token string
	found, err := t.Store.Get(ctx, KeyAuthToken, &token)
	if err != nil || !found || token == "" {
		return "", false
	}
	return token, true
}
