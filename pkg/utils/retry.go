package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type RetryOptions struct {
	MaxElapsedTime  time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

// Permanent interrompe as tentativas e devolve err ao chamador.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// WithRetry executa a operação com backoff exponencial até esgotar as
// tentativas, o tempo máximo ou o contexto.
func WithRetry[T any](ctx context.Context, operation func() (T, error), opts RetryOptions) (T, error) {
	var result T

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(opts.MaxElapsedTime),
		backoff.WithInitialInterval(opts.InitialInterval),
		backoff.WithMaxInterval(opts.MaxInterval),
	), opts.MaxRetries)

	err := backoff.Retry(func() error {
		var err error
		result, err = operation()
		return err
	}, backoff.WithContext(b, ctx))

	return result, err
}
