package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/domain/session"
)

const (
	tokenKeyFmt = "cred:%s:token"
	userKeyFmt  = "cred:%s:user"
)

// Redis persists credentials so sessions survive gateway restarts. When the
// server is unreachable at startup or mid-flight it degrades to the
// in-process store instead of failing requests.
type Redis struct {
	client   *redis.Client
	fallback *Memory
	ttl      time.Duration
	logger   *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(addr, password string, ttl time.Duration, logger *log.Logger) *Redis {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	r := &Redis{fallback: NewMemory(), ttl: ttl, logger: logger}

	if addr == "" {
		return r
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[CredStore] Redis unavailable, using in-process store: %v", err)
		}
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[CredStore] Redis error, falling back to in-process store: %v", err)
	}
}

func (r *Redis) Save(ctx context.Context, sid string, s session.Session) error {
	if r.isUnavailable() {
		return r.fallback.Save(ctx, sid, s)
	}

	b, err := json.Marshal(s.User)
	if err != nil {
		return err
	}

	// Both keys land in one transaction so a reader never observes the
	// token without the user record or vice versa.
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(tokenKeyFmt, sid), s.Token, r.ttl)
	pipe.Set(ctx, fmt.Sprintf(userKeyFmt, sid), b, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.warnUnavailableOnce(err)
		return r.fallback.Save(ctx, sid, s)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context, sid string) (session.Session, bool) {
	if r.isUnavailable() {
		return r.fallback.Load(ctx, sid)
	}

	vals, err := r.client.MGet(ctx, fmt.Sprintf(tokenKeyFmt, sid), fmt.Sprintf(userKeyFmt, sid)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warnUnavailableOnce(err)
		}
		return r.fallback.Load(ctx, sid)
	}
	if len(vals) != 2 {
		return session.Session{}, false
	}

	token, _ := vals[0].(string)
	user, _ := vals[1].(string)

	s, ok := decodeRecord(token, []byte(user))
	if !ok {
		// Half-present or unparseable pairs are corrupt; drop them so the
		// next load is a clean absent.
		_ = r.Clear(ctx, sid)
		return session.Session{}, false
	}
	return s, true
}

func (r *Redis) Clear(ctx context.Context, sid string) error {
	if r.isUnavailable() {
		return r.fallback.Clear(ctx, sid)
	}
	if err := r.client.Del(ctx, fmt.Sprintf(tokenKeyFmt, sid), fmt.Sprintf(userKeyFmt, sid)).Err(); err != nil {
		r.warnUnavailableOnce(err)
	}
	return r.fallback.Clear(ctx, sid)
}

func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

var _ Store = (*Redis)(nil)
