package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PostBookingService/internal/domain"
	"github.com/m04kA/SMC-PostBookingService/internal/integrations/pushgateway"
	"github.com/m04kA/SMC-PostBookingService/internal/testutils/memstore"
	"github.com/m04kA/SMC-PostBookingService/pkg/logger"
	"github.com/m04kA/SMC-PostBookingService/pkg/metrics"
)

type fakeTransport struct {
	mu        sync.Mutex
	failIDs   map[int64]bool
	delivered []int64
}

func (t *fakeTransport) Name() string { return "fake" }

func (t *fakeTransport) Deliver(_ context.Context, n *domain.Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failIDs[n.ID] {
		return errors.New("transport down")
	}
	t.delivered = append(t.delivered, n.ID)
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	relayNow   = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	relayRetry = RetryPolicy{MaxAttempts: 3, Backoff: time.Minute}
)

func newRelay(t *testing.T, store *memstore.Store, transport Transport, batch int) (*Relay, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	r := NewRelay(store.Notifications(), store.TxManager(), transport, m, batch, relayRetry, logger.Nop())
	r.timeProvider = fixedTime{t: relayNow}
	return r, m
}

func seedUndelivered(store *memstore.Store, n int) []int64 {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		created := store.SeedNotification(domain.Notification{ClientID: 1, Body: "b", Kind: domain.NotificationNews})
		ids = append(ids, created.ID)
	}
	return ids
}

func TestRelay_DeliversBatchInOrder(t *testing.T) {
	store := memstore.New()
	ids := seedUndelivered(store, 3)
	delivered := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	store.SeedNotification(domain.Notification{ClientID: 1, Body: "old", Kind: domain.NotificationNews, DeliveredAt: &delivered})

	transport := &fakeTransport{}
	relay, m := newRelay(t, store, transport, 2)

	count, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, ids[:2], transport.delivered)

	count, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for _, n := range store.AllNotifications() {
		require.NotNil(t, n.DeliveredAt, "notification %d", n.ID)
	}
	assert.Equal(t, relayNow, *store.AllNotifications()[0].DeliveredAt)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.NotificationsSent.WithLabelValues("fake", "ok")))
}

func TestRelay_FailedDeliveryIsRetried(t *testing.T) {
	store := memstore.New()
	ids := seedUndelivered(store, 3)

	transport := &fakeTransport{failIDs: map[int64]bool{ids[1]: true}}
	relay, m := newRelay(t, store, transport, 10)

	count, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all := store.AllNotifications()
	assert.NotNil(t, all[0].DeliveredAt)
	assert.Nil(t, all[1].DeliveredAt)
	assert.NotNil(t, all[2].DeliveredAt)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.NotificationsSent.WithLabelValues("fake", "error")))

	assert.Equal(t, 1, all[1].DeliveryAttempts)
	require.NotNil(t, all[1].NextAttemptAt)
	assert.Equal(t, relayNow.Add(time.Minute), *all[1].NextAttemptAt)

	// до истечения паузы запись не выбирается
	transport.failIDs = nil
	count, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	relay.timeProvider = fixedTime{t: relayNow.Add(time.Minute)}
	count, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []int64{ids[0], ids[2], ids[1]}, transport.delivered)
}

func TestRelay_FailingRowsDoNotStarveBatch(t *testing.T) {
	store := memstore.New()
	ids := seedUndelivered(store, 3)

	// первые две записи не доставляются никогда, пачка вмещает ровно их
	transport := &fakeTransport{failIDs: map[int64]bool{ids[0]: true, ids[1]: true}}
	relay, _ := newRelay(t, store, transport, 2)

	count, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []int64{ids[2]}, transport.delivered)
}

func TestRelay_GivesUpAfterMaxAttempts(t *testing.T) {
	store := memstore.New()
	ids := seedUndelivered(store, 1)

	transport := &fakeTransport{failIDs: map[int64]bool{ids[0]: true}}
	relay, m := newRelay(t, store, transport, 10)

	// попытки в 12:00, 12:01 и 12:03
	at := relayNow
	for i := 1; i <= relayRetry.MaxAttempts; i++ {
		relay.timeProvider = fixedTime{t: at}
		_, err := relay.RunOnce(context.Background())
		require.NoError(t, err)
		at = at.Add(relayRetry.Delay(i))
	}

	transport.failIDs = nil
	relay.timeProvider = fixedTime{t: relayNow.Add(24 * time.Hour)}
	count, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, transport.delivered)

	n := store.AllNotifications()[0]
	assert.Nil(t, n.DeliveredAt)
	assert.Equal(t, relayRetry.MaxAttempts, n.DeliveryAttempts)
	assert.Equal(t, float64(relayRetry.MaxAttempts), testutil.ToFloat64(m.NotificationsSent.WithLabelValues("fake", "error")))
}

func TestRelay_MarkFailedFailureRollsBackBatch(t *testing.T) {
	store := memstore.New()
	ids := seedUndelivered(store, 2)
	store.FailOn("notification.MarkFailed", errors.New("db down"))

	transport := &fakeTransport{failIDs: map[int64]bool{ids[1]: true}}
	relay, _ := newRelay(t, store, transport, 10)

	_, err := relay.RunOnce(context.Background())
	require.Error(t, err)
	for _, n := range store.AllNotifications() {
		assert.Nil(t, n.DeliveredAt)
		assert.Zero(t, n.DeliveryAttempts)
	}
	assert.Equal(t, 0, store.Calls("notification.MarkDelivered"))
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 20, Backoff: 30 * time.Second}

	assert.Equal(t, 30*time.Second, p.Delay(1))
	assert.Equal(t, time.Minute, p.Delay(2))
	assert.Equal(t, 4*time.Minute, p.Delay(4))
	assert.Equal(t, time.Hour, p.Delay(8))
	assert.Equal(t, time.Hour, p.Delay(50))
}

func TestNewRelay_DefaultRetryPolicy(t *testing.T) {
	r := NewRelay(nil, nil, &fakeTransport{}, nil, 10, RetryPolicy{}, logger.Nop())
	assert.Equal(t, DefaultRetryPolicy, r.retry)
}

func TestRelay_MarkDeliveredFailureKeepsRows(t *testing.T) {
	store := memstore.New()
	seedUndelivered(store, 2)
	store.FailOn("notification.MarkDelivered", errors.New("db down"))

	relay, _ := newRelay(t, store, &fakeTransport{}, 10)

	count, err := relay.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, count)
	for _, n := range store.AllNotifications() {
		assert.Nil(t, n.DeliveredAt)
	}
}

func TestRelay_ListFailure(t *testing.T) {
	store := memstore.New()
	store.FailOn("notification.ListUndelivered", errors.New("db down"))

	relay, _ := newRelay(t, store, &fakeTransport{}, 10)
	_, err := relay.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, store.Calls("notification.MarkDelivered"))
}

type fakePublisher struct {
	key       string
	messageID string
	payload   []byte
}

func (p *fakePublisher) PublishJSON(_ context.Context, key, messageID string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.key, p.messageID, p.payload = key, messageID, b
	return nil
}

func TestAMQPTransport_Deliver(t *testing.T) {
	pub := &fakePublisher{}
	bookingID := int64(42)
	title := "Запись подтверждена"
	n := &domain.Notification{ID: 9, ClientID: 3, Kind: domain.NotificationService, Title: &title, Body: "b", BookingID: &bookingID}

	require.NoError(t, NewAMQPTransport(pub).Deliver(context.Background(), n))

	assert.Equal(t, "notification.service", pub.key)
	assert.Equal(t, MessageID(9), pub.messageID)

	var msg Message
	require.NoError(t, json.Unmarshal(pub.payload, &msg))
	assert.Equal(t, int64(9), msg.NotificationID)
	assert.Equal(t, pub.messageID, msg.MessageID)
	require.NotNil(t, msg.BookingID)
	assert.Equal(t, bookingID, *msg.BookingID)
}

func TestMessageID_Stable(t *testing.T) {
	assert.Equal(t, MessageID(1), MessageID(1))
	assert.NotEqual(t, MessageID(1), MessageID(2))
}

func TestHTTPTransport_Deliver(t *testing.T) {
	var key string
	var got pushgateway.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	transport := NewHTTPTransport(pushgateway.NewClient(srv.URL, time.Second, logger.Nop()))
	n := &domain.Notification{ID: 5, ClientID: 2, Kind: domain.NotificationAdmin, Body: "скидка"}

	require.NoError(t, transport.Deliver(context.Background(), n))
	assert.Equal(t, MessageID(5), key)
	assert.Equal(t, "admin", got.Kind)
	assert.Equal(t, "скидка", got.Body)
}
