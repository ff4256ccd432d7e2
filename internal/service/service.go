// Package service реализует логику витрины UC поверх каталога, диалога заказа и контактов.
package service

import (
	"context"
	"time"

	"github.com/mmeshcher/ucstore/internal/catalog"
	"github.com/mmeshcher/ucstore/internal/model"
	"github.com/mmeshcher/ucstore/internal/validation"
	"github.com/mmeshcher/ucstore/internal/workflow"
)

// Catalog содержит статические данные витрины.
type Catalog struct {
	Packages       []model.Package       `json:"packages"`
	PaymentMethods []model.PaymentMethod `json:"payment_methods"`
	Faq            []model.FaqItem       `json:"faq"`
}

// Page содержит всё, что нужно для отрисовки страницы витрины.
type Page struct {
	Catalog
	Contacts model.Contacts
	Dialog   workflow.Snapshot
	Notice   *model.Notice
}

// Service содержит логику витрины.
type Service struct {
	sessions *workflow.Store
	engine   *workflow.Engine
	contacts *ContactBook
}

// NewService создаёт сервис витрины.
func NewService(sessions *workflow.Store, engine *workflow.Engine, contacts *ContactBook) *Service {
	return &Service{
		sessions: sessions,
		engine:   engine,
		contacts: contacts,
	}
}

// Catalog возвращает пакеты, способы оплаты и FAQ.
func (s *Service) Catalog() Catalog {
	return Catalog{
		Packages:       catalog.Packages(),
		PaymentMethods: catalog.PaymentMethods(),
		Faq:            catalog.Faq(),
	}
}

// Contacts возвращает текущие контакты поддержки.
func (s *Service) Contacts() model.Contacts {
	return s.contacts.Get()
}

// Page собирает данные страницы и забирает отложенное уведомление сессии.
func (s *Service) Page(sessionID string) Page {
	sess := s.sessions.Get(sessionID)

	page := Page{
		Catalog:  s.Catalog(),
		Contacts: s.contacts.Get(),
		Dialog:   sess.Snapshot(),
	}
	if n, ok := sess.TakeNotice(); ok {
		page.Notice = &n
	}
	return page
}

// OpenDialog открывает диалог заказа выбранного пакета.
func (s *Service) OpenDialog(sessionID string, packageID int) error {
	return s.sessions.Get(sessionID).Open(packageID)
}

// UpdatePlayerID обновляет Player ID в черновике.
func (s *Service) UpdatePlayerID(sessionID, playerID string) (validation.Reason, error) {
	return s.sessions.Get(sessionID).Edit(playerID)
}

// Submit сохраняет введённый Player ID и отправляет заказ.
func (s *Service) Submit(ctx context.Context, sessionID, playerID string) workflow.Outcome {
	sess := s.sessions.Get(sessionID)
	if _, err := sess.Edit(playerID); err != nil {
		return workflow.Outcome{Kind: workflow.OutcomeRejected, Err: err}
	}
	return s.engine.Submit(ctx, sess)
}

// CancelDialog закрывает диалог заказа.
func (s *Service) CancelDialog(sessionID string) error {
	return s.sessions.Get(sessionID).Cancel()
}

// StartSessionSweeper запускает фоновую очистку простаивающих сессий.
func (s *Service) StartSessionSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	s.sessions.StartSweeper(ctx, interval, maxIdle)
}
