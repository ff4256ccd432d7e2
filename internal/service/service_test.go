package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/ucstore/internal/model"
	"github.com/mmeshcher/ucstore/internal/upstream"
	"github.com/mmeshcher/ucstore/internal/workflow"
)

type stubFetcher struct {
	contacts model.Contacts
	err      error
	calls    int
}

func (s *stubFetcher) FetchContacts(ctx context.Context) (model.Contacts, error) {
	s.calls++
	return s.contacts, s.err
}

type stubUpstream struct {
	orderErr   error
	paymentURL string
}

func (s *stubUpstream) CreateOrder(ctx context.Context, req upstream.OrderRequest) (upstream.OrderResult, error) {
	if s.orderErr != nil {
		return upstream.OrderResult{}, s.orderErr
	}
	return upstream.OrderResult{ID: upstream.NewOrderID("31")}, nil
}

func (s *stubUpstream) CreatePayment(ctx context.Context, req upstream.PaymentRequest) (upstream.PaymentResult, error) {
	return upstream.PaymentResult{PaymentURL: s.paymentURL}, nil
}

func newTestService(up *stubUpstream) *Service {
	return NewService(workflow.NewStore(), workflow.NewEngine(up, up, zap.NewNop()), NewContactBook())
}

func TestLoadContacts_Success(t *testing.T) {
	book := NewContactBook()
	fetcher := &stubFetcher{contacts: model.Contacts{
		TelegramContact: "https://t.me/new",
		WhatsappContact: "https://wa.me/new",
	}}

	LoadContacts(context.Background(), fetcher, book, zap.NewNop())

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "https://t.me/new", book.Get().TelegramContact)
	assert.Equal(t, "https://wa.me/new", book.Get().WhatsappContact)
}

func TestLoadContacts_FailureKeepsDefaults(t *testing.T) {
	book := NewContactBook()
	fetcher := &stubFetcher{err: errors.New("settings unavailable")}

	LoadContacts(context.Background(), fetcher, book, zap.NewNop())

	assert.Equal(t, model.DefaultContacts(), book.Get())
}

func TestLoadContacts_PartialResponse(t *testing.T) {
	book := NewContactBook()
	fetcher := &stubFetcher{contacts: model.Contacts{TelegramContact: "https://t.me/only"}}

	LoadContacts(context.Background(), fetcher, book, zap.NewNop())

	assert.Equal(t, "https://t.me/only", book.Get().TelegramContact)
	assert.Equal(t, model.DefaultContacts().WhatsappContact, book.Get().WhatsappContact)
}

func TestPage_ConsumesNotice(t *testing.T) {
	svc := newTestService(&stubUpstream{orderErr: errors.New("down")})

	require.NoError(t, svc.OpenDialog("s1", 2))
	out := svc.Submit(context.Background(), "s1", "123456789")
	require.Equal(t, workflow.OutcomeFailed, out.Kind)

	page := svc.Page("s1")
	require.NotNil(t, page.Notice)
	assert.Equal(t, model.NoticeError, page.Notice.Kind)
	assert.Equal(t, workflow.StateFailed, page.Dialog.State)
	assert.Equal(t, "123456789", page.Dialog.Draft.PlayerID)
	assert.Len(t, page.Packages, 5)

	page = svc.Page("s1")
	assert.Nil(t, page.Notice)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newTestService(&stubUpstream{paymentURL: "https://pay.example"})

	require.NoError(t, svc.OpenDialog("a", 1))
	_, err := svc.UpdatePlayerID("a", "11111111")
	require.NoError(t, err)

	page := svc.Page("b")
	assert.Equal(t, workflow.StateIdle, page.Dialog.State)
	assert.Empty(t, page.Dialog.Draft.PlayerID)

	require.NoError(t, svc.CancelDialog("a"))
	assert.Equal(t, workflow.StateIdle, svc.Page("a").Dialog.State)
}

func TestSubmit_ClosedDialogRejected(t *testing.T) {
	svc := newTestService(&stubUpstream{})

	out := svc.Submit(context.Background(), "nobody", "123456789")
	assert.Equal(t, workflow.OutcomeRejected, out.Kind)
	assert.ErrorIs(t, out.Err, workflow.ErrDialogClosed)
}

func TestStartSessionSweeper_NoBlockAfterCancel(t *testing.T) {
	svc := newTestService(&stubUpstream{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		svc.StartSessionSweeper(ctx, 10*time.Millisecond, time.Minute)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("StartSessionSweeper did not return after cancel")
	}
}
