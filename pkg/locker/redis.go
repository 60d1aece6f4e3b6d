package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Освобождаем ключ только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisConfig параметры распределённой блокировки
type RedisConfig struct {
	Prefix       string
	TTL          time.Duration // время жизни ключа, если владелец не освободил его
	WaitTimeout  time.Duration // сколько ждать освобождения чужой блокировки
	RetryBackoff time.Duration
}

// Redis блокировка по ключу между экземплярами сервиса (SET NX PX)
type Redis struct {
	rdb redis.Cmdable
	cfg RedisConfig
}

func NewRedis(rdb redis.Cmdable, cfg RedisConfig) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = "lock"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 3 * time.Second
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 25 * time.Millisecond
	}
	return &Redis{rdb: rdb, cfg: cfg}
}

// Obtain пытается занять ключ, повторяя попытки до WaitTimeout
func (r *Redis) Obtain(ctx context.Context, key string) (ReleaseFunc, error) {
	fullKey := r.cfg.Prefix + ":" + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, r.cfg.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(r.cfg.RetryBackoff)
	defer ticker.Stop()

	for {
		ok, err := r.rdb.SetNX(waitCtx, fullKey, token, r.cfg.TTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("locker: redis SETNX %s: %w", fullKey, err)
		}
		if ok {
			return r.releaser(fullKey, token), nil
		}

		select {
		case <-waitCtx.Done():
			return nil, errors.Join(ErrNotObtained, waitCtx.Err())
		case <-ticker.C:
		}
	}
}

func (r *Redis) releaser(key, token string) ReleaseFunc {
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, r.rdb, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("locker: redis release %s: %w", key, err)
		}
		return nil
	}
}
