// Package workflow реализует сценарий оформления заказа: выбор пакета, ввод Player ID,
// проверку и последовательное создание заказа и платежа.
package workflow

import (
	"errors"
	"fmt"
)

// State описывает состояние диалога заказа.
type State int

const (
	StateIdle State = iota
	StateDialogOpen
	StateValidating
	StateSubmittingOrder
	StateSubmittingPayment
	StateRedirecting
	StateFallbackSuccess
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StateDialogOpen:        "dialog_open",
	StateValidating:        "validating",
	StateSubmittingOrder:   "submitting_order",
	StateSubmittingPayment: "submitting_payment",
	StateRedirecting:       "redirecting",
	StateFallbackSuccess:   "fallback_success",
	StateFailed:            "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// DialogOpen сообщает, показывается ли диалог заказа в этом состоянии.
func (s State) DialogOpen() bool {
	switch s {
	case StateDialogOpen, StateValidating, StateSubmittingOrder, StateSubmittingPayment, StateFailed:
		return true
	}
	return false
}

// InFlight сообщает, выполняется ли сейчас отправка заказа.
func (s State) InFlight() bool {
	return s == StateSubmittingOrder || s == StateSubmittingPayment
}

var (
	// ErrSubmissionFailed объединяет ошибки шагов создания заказа и платежа.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrUnknownPackage возвращается, если пакет не найден в каталоге.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrSubmissionInFlight возвращается при попытке изменить диалог во время отправки.
	ErrSubmissionInFlight = errors.New("submission in flight")
	// ErrDialogClosed возвращается при действиях над закрытым диалогом.
	ErrDialogClosed = errors.New("order dialog is not open")
)

// Step обозначает шаг удалённой цепочки вызовов.
type Step string

const (
	StepOrder   Step = "order"
	StepPayment Step = "payment"
)

// StepError сохраняет шаг, на котором оборвалась отправка. Для посетителя оба шага
// выглядят одинаково, но в коде их можно различить.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s step: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибку с ErrSubmissionFailed через errors.Is.
func (e *StepError) Is(target error) bool {
	return target == ErrSubmissionFailed
}
