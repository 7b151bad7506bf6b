package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
)

// maxBackoff верхняя граница паузы между попытками
const maxBackoff = time.Hour

// RetryPolicy повтор неудачной доставки.
// После MaxAttempts неудач запись остается в ленте клиента, но relay ее больше не выбирает.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy политика по умолчанию
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 10, Backoff: 30 * time.Second}

// Delay пауза перед следующей попыткой после attempts неудач: Backoff * 2^(attempts-1), не больше часа
func (p RetryPolicy) Delay(attempts int) time.Duration {
	delay := p.Backoff
	for i := 1; i < attempts && delay < maxBackoff; i++ {
		delay *= 2
	}
	if delay > maxBackoff {
		delay = maxBackoff
	}
	return delay
}

// Relay переносит недоставленные уведомления из outbox в транспорт
type Relay struct {
	notificationRepo NotificationRepository
	txManager        TransactionManager
	transport        Transport
	metrics          MetricsRecorder
	batchSize        int
	retry            RetryPolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewRelay создает новый экземпляр relay
func NewRelay(
	notificationRepo NotificationRepository,
	txManager TransactionManager,
	transport Transport,
	metrics MetricsRecorder,
	batchSize int,
	retry RetryPolicy,
	logger Logger,
) *Relay {
	if retry.MaxAttempts <= 0 || retry.Backoff <= 0 {
		retry = DefaultRetryPolicy
	}
	return &Relay{
		notificationRepo: notificationRepo,
		txManager:        txManager,
		transport:        transport,
		metrics:          metrics,
		batchSize:        batchSize,
		retry:            retry,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// RunOnce доставляет одну пачку уведомлений и возвращает число доставленных.
// Строки пачки заблокированы до конца транзакции. Неудачная запись откладывается
// по RetryPolicy, чтобы постоянно падающие записи не занимали каждую пачку.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	var delivered int
	now := r.timeProvider.Now()

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		batch, err := r.notificationRepo.ListUndelivered(txCtx, now, r.retry.MaxAttempts, r.batchSize)
		if err != nil {
			r.logger.Error("OutboxRelay: failed to list undelivered: %v", err)
			return fmt.Errorf("outbox: list undelivered: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(batch))
		for _, n := range batch {
			if err := ctx.Err(); err != nil {
				break
			}
			if err := r.transport.Deliver(txCtx, n); err != nil {
				r.logger.Warn("OutboxRelay: notification id=%d via %s failed: %v", n.ID, r.transport.Name(), err)
				r.metrics.ObserveNotificationRelayed(r.transport.Name(), false)
				if err := r.postpone(txCtx, n, now); err != nil {
					return err
				}
				continue
			}
			r.metrics.ObserveNotificationRelayed(r.transport.Name(), true)
			ids = append(ids, n.ID)
		}

		if err := r.notificationRepo.MarkDelivered(txCtx, ids, now); err != nil {
			r.logger.Error("OutboxRelay: failed to mark %d notifications delivered: %v", len(ids), err)
			return fmt.Errorf("outbox: mark delivered: %w", err)
		}
		delivered = len(ids)

		if delivered < len(batch) {
			r.logger.Warn("OutboxRelay: delivered %d of %d via %s", delivered, len(batch), r.transport.Name())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if delivered > 0 {
		r.logger.Info("OutboxRelay: delivered=%d via %s", delivered, r.transport.Name())
	}
	return delivered, nil
}

// postpone фиксирует неудачную попытку и назначает следующую
func (r *Relay) postpone(ctx context.Context, n *domain.Notification, now time.Time) error {
	attempts := n.DeliveryAttempts + 1
	next := now.Add(r.retry.Delay(attempts))

	if err := r.notificationRepo.MarkFailed(ctx, n.ID, next); err != nil {
		r.logger.Error("OutboxRelay: failed to postpone notification id=%d: %v", n.ID, err)
		return fmt.Errorf("outbox: mark failed: %w", err)
	}

	if attempts >= r.retry.MaxAttempts {
		r.logger.Warn("OutboxRelay: notification id=%d gave up after %d attempts", n.ID, attempts)
	}
	return nil
}
