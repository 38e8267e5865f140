package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// fakeKV answers with pre-built go-redis commands, so no server is needed.
type fakeKV struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.failGet != nil {
		cmd.SetErr(f.failGet)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	f.ttls[key] = exp
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(n)
	return cmd
}

func TestTokenStore_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	p := NewTokenStoreProvider(kv, 0)
	ctx := context.Background()
	s := p.For("browser-1")

	if _, ok, err := s.Get(ctx); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if kv.ttls["dashboard:token:browser-1"] != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", kv.ttls["dashboard:token:browser-1"])
	}
	cred, ok, err := s.Get(ctx)
	if err != nil || !ok || cred != domain.Credential("tok") {
		t.Fatalf("unexpected get: %q %v %v", cred, ok, err)
	}
	if _, ok, _ := p.For("browser-2").Get(ctx); ok {
		t.Fatalf("scopes must not share credentials")
	}
}

func TestTokenStore_ClearIsIdempotent(t *testing.T) {
	s := NewTokenStoreProvider(newFakeKV(), time.Hour).For("x")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.Clear(ctx); err != nil {
			t.Fatalf("clear #%d: %v", i, err)
		}
	}
	_ = s.Set(ctx, "tok")
	_ = s.Clear(ctx)
	if _, ok, _ := s.Get(ctx); ok {
		t.Fatalf("expected cleared store")
	}
}

func TestTokenStore_GetError(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = errors.New("connection reset")
	s := NewTokenStoreProvider(kv, 0).For("x")

	if _, _, err := s.Get(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
