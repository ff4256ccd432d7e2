package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mmeshcher/ucstore/internal/catalog"
	"github.com/mmeshcher/ucstore/internal/model"
	"github.com/mmeshcher/ucstore/internal/upstream"
	"github.com/mmeshcher/ucstore/internal/validation"
)

const (
	failureNotice  = "Could not create the order. Please try again."
	fallbackNotice = "Order #%s created. Contact support to complete the payment."
)

// OrderCreator создаёт заказ во внешнем сервисе.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req upstream.OrderRequest) (upstream.OrderResult, error)
}

// PaymentCreator создаёт платёж по заказу во внешнем сервисе.
type PaymentCreator interface {
	CreatePayment(ctx context.Context, req upstream.PaymentRequest) (upstream.PaymentResult, error)
}

// OutcomeKind описывает итог попытки отправки.
type OutcomeKind int

const (
	// OutcomeRejected: отправка не начата: диалог закрыт или уже идёт отправка.
	OutcomeRejected OutcomeKind = iota
	// OutcomeInvalid: Player ID не прошёл проверку, сеть не использовалась.
	OutcomeInvalid
	// OutcomeRedirect: платёж создан, посетителя нужно отправить по PaymentURL.
	OutcomeRedirect
	// OutcomeFallback: заказ и платёж созданы, но ссылки на оплату нет.
	OutcomeFallback
	// OutcomeFailed: один из шагов завершился ошибкой.
	OutcomeFailed
)

var outcomeNames = [...]string{"rejected", "invalid", "redirect", "fallback", "failed"}

func (k OutcomeKind) String() string {
	if int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return fmt.Sprintf("outcome(%d)", int(k))
}

// Outcome описывает результат Submit.
type Outcome struct {
	Kind       OutcomeKind
	Reason     validation.Reason
	OrderID    upstream.OrderID
	PaymentURL string
	Err        error
}

// Engine выполняет цепочку «заказ → платёж» для сессий.
type Engine struct {
	orders   OrderCreator
	payments PaymentCreator
	logger   *zap.Logger
}

// NewEngine создаёт движок отправки заказов.
func NewEngine(orders OrderCreator, payments PaymentCreator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

// Submit проверяет черновик сессии и, если он корректен, последовательно создаёт заказ
// и платёж. Блокировка сессии на время сетевых вызовов не удерживается.
func (e *Engine) Submit(ctx context.Context, s *Session) Outcome {
	pkg, playerID, outcome, ok := e.begin(s)
	if !ok {
		return outcome
	}

	log := e.logger.With(zap.Int("package", pkg.ID), zap.String("player_id", playerID))

	order, err := e.orders.CreateOrder(ctx, upstream.OrderRequest{
		PlayerID: playerID,
		UCAmount: pkg.UC,
		BonusUC:  pkg.Bonus,
		Price:    pkg.Price,
	})
	if err != nil {
		log.Warn("order step failed", zap.Error(err))
		return e.fail(s, StepOrder, err)
	}

	s.setState(StateSubmittingPayment)

	payment, err := e.payments.CreatePayment(ctx, upstream.PaymentRequest{
		OrderID:     order.ID,
		Amount:      pkg.Price,
		Description: Description(pkg, playerID),
	})
	if err != nil {
		log.Warn("payment step failed", zap.Error(err), zap.Stringer("order", order.ID))
		return e.fail(s, StepPayment, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.SubmissionInFlight = false

	if payment.PaymentURL != "" {
		s.state = StateRedirecting
		log.Info("payment created", zap.Stringer("order", order.ID))
		return Outcome{Kind: OutcomeRedirect, OrderID: order.ID, PaymentURL: payment.PaymentURL}
	}

	s.reset()
	s.state = StateFallbackSuccess
	s.notice = &model.Notice{
		Kind: model.NoticeSuccess,
		Text: fmt.Sprintf(fallbackNotice, order.ID),
	}
	log.Info("payment created without url", zap.Stringer("order", order.ID))
	return Outcome{Kind: OutcomeFallback, OrderID: order.ID}
}

// begin выполняет проверку под блокировкой и переводит сессию в SubmittingOrder.
func (e *Engine) begin(s *Session) (model.Package, string, Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state.InFlight() {
		return model.Package{}, "", Outcome{Kind: OutcomeRejected, Err: ErrSubmissionInFlight}, false
	}
	if s.state != StateDialogOpen && s.state != StateFailed {
		return model.Package{}, "", Outcome{Kind: OutcomeRejected, Err: ErrDialogClosed}, false
	}

	s.state = StateValidating

	ok, reason := validation.ValidatePlayerID(s.draft.PlayerID)
	if !ok {
		s.attempted = true
		s.draft.ValidationError = string(reason)
		s.state = StateDialogOpen
		return model.Package{}, "", Outcome{Kind: OutcomeInvalid, Reason: reason}, false
	}

	if s.draft.SelectedPackageID == nil {
		s.state = StateDialogOpen
		return model.Package{}, "", Outcome{Kind: OutcomeRejected, Err: ErrUnknownPackage}, false
	}
	pkg, found := catalog.Lookup(*s.draft.SelectedPackageID)
	if !found {
		s.state = StateDialogOpen
		return model.Package{}, "", Outcome{Kind: OutcomeRejected, Err: ErrUnknownPackage}, false
	}

	s.draft.ValidationError = ""
	s.draft.SubmissionInFlight = true
	s.state = StateSubmittingOrder

	return pkg, s.draft.PlayerID, Outcome{}, true
}

func (e *Engine) fail(s *Session, step Step, err error) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.SubmissionInFlight = false
	s.state = StateFailed
	s.notice = &model.Notice{Kind: model.NoticeError, Text: failureNotice}

	return Outcome{Kind: OutcomeFailed, Err: &StepError{Step: step, Err: err}}
}

// Description формирует описание платежа из количества UC и Player ID.
func Description(pkg model.Package, playerID string) string {
	if pkg.Bonus > 0 {
		return fmt.Sprintf("%d UC (+%d bonus) for player %s", pkg.UC, pkg.Bonus, playerID)
	}
	return fmt.Sprintf("%d UC for player %s", pkg.UC, playerID)
}
