package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mmeshcher/ucstore/internal/model"
)

// ContactsFetcher получает контакты поддержки из сервиса настроек.
type ContactsFetcher interface {
	FetchContacts(ctx context.Context) (model.Contacts, error)
}

// ContactBook хранит текущие контакты поддержки. Создаётся в main и передаётся
// тем, кому нужны контакты.
type ContactBook struct {
	mu       sync.RWMutex
	contacts model.Contacts
}

// NewContactBook создаёт книгу контактов со значениями по умолчанию.
func NewContactBook() *ContactBook {
	return &ContactBook{contacts: model.DefaultContacts()}
}

// Get возвращает текущие контакты.
func (b *ContactBook) Get() model.Contacts {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.contacts
}

// Set заменяет непустые поля контактов.
func (b *ContactBook) Set(c model.Contacts) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c.TelegramContact != "" {
		b.contacts.TelegramContact = c.TelegramContact
	}
	if c.WhatsappContact != "" {
		b.contacts.WhatsappContact = c.WhatsappContact
	}
}

// LoadContacts однократно запрашивает настройки и обновляет книгу контактов.
// Ошибка не возвращается: при неудаче остаются значения по умолчанию.
func LoadContacts(ctx context.Context, fetcher ContactsFetcher, book *ContactBook, logger *zap.Logger) {
	if fetcher == nil {
		return
	}

	contacts, err := fetcher.FetchContacts(ctx)
	if err != nil {
		logger.Debug("settings not loaded, keeping default contacts", zap.Error(err))
		return
	}

	book.Set(contacts)
	logger.Debug("support contacts loaded")
}
