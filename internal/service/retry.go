package service

import (
	"context"
	"errors"
	"time"

	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/cenkalti/backoff/v4"
)

// retryOnConflict повторяет op, пока она возвращает domain.ErrConflict, не более maxRetries раз.
// Остальные ошибки возвращаются сразу.
func retryOnConflict(ctx context.Context, maxRetries int, interval time.Duration, op func(attempt int) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.MaxInterval = 50 * interval
	b.MaxElapsedTime = 0
	b.Reset()

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op(attempt)
		if err == nil || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx))
}
