package workflow

import (
	"context"
	"sync"
	"time"
)

// Store хранит сессии посетителей в памяти процесса.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore создаёт пустое хранилище сессий.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Get возвращает сессию по идентификатору, создавая её при первом обращении.
// Время последнего обращения обновляется под блокировкой хранилища, чтобы Sweep
// не удалил сессию между Get и последующей операцией над ней.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	s, ok := st.sessions[id]
	if ok {
		s.markSeen()
	}
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		s.markSeen()
		return s
	}
	s = newSession(st.now)
	st.sessions[id] = s
	return s
}

// Len возвращает количество сессий.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep удаляет сессии, не использовавшиеся дольше maxIdle. Сессии с идущей
// отправкой не удаляются.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := st.now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper периодически удаляет простаивающие сессии до отмены контекста.
func (st *Store) StartSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep(maxIdle)
		}
	}
}
