package workflow

import (
	"sync"
	"time"

	"github.com/mmeshcher/ucstore/internal/catalog"
	"github.com/mmeshcher/ucstore/internal/model"
	"github.com/mmeshcher/ucstore/internal/validation"
)

// Session хранит черновик заказа одного посетителя.
type Session struct {
	mu sync.Mutex

	state State
	draft model.OrderDraft
	// attempted выставляется после первой неудачной проверки: с этого момента
	// каждое изменение ввода проверяется сразу.
	attempted bool
	notice    *model.Notice
	lastSeen  time.Time
	now       func() time.Time
}

// Snapshot содержит копию состояния сессии для отрисовки.
type Snapshot struct {
	State   State
	Draft   model.OrderDraft
	Package *model.Package
}

// NewSession создаёт сессию в состоянии Idle.
func NewSession() *Session {
	return newSession(time.Now)
}

func newSession(now func() time.Time) *Session {
	return &Session{
		state:    StateIdle,
		lastSeen: now(),
		now:      now,
	}
}

// Open выбирает пакет и открывает диалог с чистым черновиком.
func (s *Session) Open(packageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state.InFlight() {
		return ErrSubmissionInFlight
	}

	if _, ok := catalog.Lookup(packageID); !ok {
		return ErrUnknownPackage
	}

	id := packageID
	s.draft = model.OrderDraft{SelectedPackageID: &id}
	s.attempted = false
	s.state = StateDialogOpen
	return nil
}

// Edit обновляет Player ID в черновике. Проверка выполняется только после первой
// неудачной попытки отправки; возвращается текущая ошибка проверки.
func (s *Session) Edit(playerID string) (validation.Reason, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if !s.state.DialogOpen() {
		return validation.ReasonNone, ErrDialogClosed
	}
	if s.state.InFlight() {
		return validation.Reason(s.draft.ValidationError), ErrSubmissionInFlight
	}

	s.draft.PlayerID = playerID
	if s.attempted {
		_, reason := validation.ValidatePlayerID(playerID)
		s.draft.ValidationError = string(reason)
	}

	return validation.Reason(s.draft.ValidationError), nil
}

// Cancel закрывает диалог и отбрасывает черновик. Во время отправки недоступно.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state.InFlight() {
		return ErrSubmissionInFlight
	}

	s.reset()
	s.state = StateIdle
	return nil
}

// State возвращает текущее состояние диалога.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot возвращает копию состояния сессии.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	snap := Snapshot{
		State: s.state,
		Draft: s.draft,
	}
	if s.draft.SelectedPackageID != nil {
		id := *s.draft.SelectedPackageID
		snap.Draft.SelectedPackageID = &id
		if p, ok := catalog.Lookup(id); ok {
			snap.Package = &p
		}
	}
	return snap
}

// TakeNotice возвращает и сбрасывает отложенное уведомление.
func (s *Session) TakeNotice() (model.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notice == nil {
		return model.Notice{}, false
	}
	n := *s.notice
	s.notice = nil
	return n, true
}

func (s *Session) idleSince(t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.InFlight() && s.lastSeen.Before(t)
}

func (s *Session) markSeen() {
	s.mu.Lock()
	s.touch()
	s.mu.Unlock()
}

func (s *Session) touch() {
	s.lastSeen = s.now()
}

func (s *Session) reset() {
	s.draft = model.OrderDraft{}
	s.attempted = false
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
