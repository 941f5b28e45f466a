// Package memory хранит шаблоны, сессии и заявки в памяти процесса.
// Используется в demo-режиме (database.driver = "memory") и в тестах сервисов.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-TrainerScheduleService/internal/domain"
)

// Store общее состояние всех репозиториев драйвера
type Store struct {
	mu sync.RWMutex

	slots    map[int64][]domain.AvailabilitySlot // trainerID -> шаблон
	sessions map[int64]*domain.Session
	requests map[int64]*domain.SessionRequest

	nextSlotID    int64
	nextSessionID int64
	nextRequestID int64

	now func() time.Time

	// txMu сериализует транзакции
	txMu sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:    make(map[int64][]domain.AvailabilitySlot),
		sessions: make(map[int64]*domain.Session),
		requests: make(map[int64]*domain.SessionRequest),
		now:      time.Now,
	}
}

type txKey struct{}

// txLog журнал отмены: только изменения самой транзакции
type txLog struct {
	undo []func()
}

func txFrom(ctx context.Context) *txLog {
	l, _ := ctx.Value(txKey{}).(*txLog)
	return l
}

// rememberSession запоминает прежнее состояние сессии; вызывается под s.mu
func (s *Store) rememberSession(ctx context.Context, id int64) {
	l := txFrom(ctx)
	if l == nil {
		return
	}
	var saved *domain.Session
	if prev, ok := s.sessions[id]; ok {
		saved = copySession(prev)
	}
	l.undo = append(l.undo, func() {
		if saved == nil {
			delete(s.sessions, id)
			return
		}
		s.sessions[id] = saved
	})
}

// rememberRequest запоминает прежнее состояние заявки; вызывается под s.mu
func (s *Store) rememberRequest(ctx context.Context, id int64) {
	l := txFrom(ctx)
	if l == nil {
		return
	}
	var saved *domain.SessionRequest
	if prev, ok := s.requests[id]; ok {
		saved = copyRequest(prev)
	}
	l.undo = append(l.undo, func() {
		if saved == nil {
			delete(s.requests, id)
			return
		}
		s.requests[id] = saved
	})
}

// rememberSlots запоминает шаблон тренера целиком; вызывается под s.mu
func (s *Store) rememberSlots(ctx context.Context, trainerID int64) {
	l := txFrom(ctx)
	if l == nil {
		return
	}
	prev, ok := s.slots[trainerID]
	saved := append([]domain.AvailabilitySlot(nil), prev...)
	l.undo = append(l.undo, func() {
		if !ok {
			delete(s.slots, trainerID)
			return
		}
		s.slots[trainerID] = saved
	})
}

func (s *Store) rollback(l *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(l.undo) - 1; i >= 0; i-- {
		l.undo[i]()
	}
}

// TxManager транзакции поверх Store: одна транзакция за раз, откат по журналу
// Записи вне транзакции не затрагиваются откатом, выданные ID не переиспользуются
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable в памяти все транзакции и так выполняются по одной
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	log := &txLog{}

	defer func() {
		if p := recover(); p != nil {
			m.store.rollback(log)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		m.store.rollback(log)
		return err
	}
	return nil
}

func copySession(s *domain.Session) *domain.Session {
	c := *s
	return &c
}

func copyRequest(r *domain.SessionRequest) *domain.SessionRequest {
	c := *r
	return &c
}

func sortSlots(slots []domain.AvailabilitySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		si, _ := slots[i].Start.Minutes()
		sj, _ := slots[j].Start.Minutes()
		if si != sj {
			return si < sj
		}
		ei, _ := slots[i].End.Minutes()
		ej, _ := slots[j].End.Minutes()
		if ei != ej {
			return ei < ej
		}
		return slots[i].ID < slots[j].ID
	})
}
