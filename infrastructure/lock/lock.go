// Package lock fornece um lock consultivo por campanha para que execuções
// concorrentes do mesmo tipo não processem os mesmos autores e posts.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

var ErrNotAcquired = errors.New("lock já está com outra execução")

// Unlock libera um lock adquirido.
type Unlock func(ctx context.Context) error

type Locker interface {
	Acquire(ctx context.Context, key string) (Unlock, error)
}

const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

type RedisLocker struct {
	client rueidis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisLocker(client rueidis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		prefix: "campaign-run:",
	}
}

// Acquire tenta SET NX com expiração. O valor é um token aleatório para que
// só o dono libere o lock.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (Unlock, error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	err := l.client.Do(ctx, l.client.B().Set().
		Key(redisKey).
		Value(token).
		Nx().
		Px(l.ttl).
		Build()).Error()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrNotAcquired
		}
		return nil, fmt.Errorf("erro ao adquirir lock %s: %w", redisKey, err)
	}

	return func(ctx context.Context) error {
		err := l.client.Do(ctx, l.client.B().Eval().
			Script(releaseScript).
			Numkeys(1).
			Key(redisKey).
			Arg(token).
			Build()).Error()
		if err != nil {
			return fmt.Errorf("erro ao liberar lock %s: %w", redisKey, err)
		}
		return nil
	}, nil
}

// NoopLocker é usado quando o Redis não está configurado.
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string) (Unlock, error) {
	return func(context.Context) error { return nil }, nil
}

// NewRedisClient cria o cliente usado pelo RedisLocker.
func NewRedisClient(addr, username, password string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		Username:     username,
		Password:     password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no Redis %s: %w", addr, err)
	}

	return client, nil
}
