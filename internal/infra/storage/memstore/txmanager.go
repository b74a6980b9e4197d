package memstore

import (
	"context"
	"sync"
)

type txScopeKey struct{}

// txScope блокировки дней, взятые транзакцией; снимаются при её завершении,
// как pg_advisory_xact_lock при commit/rollback
type txScope struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func scopeFromContext(ctx context.Context) (*txScope, bool) {
	scope, ok := ctx.Value(txScopeKey{}).(*txScope)
	return scope, ok
}

// hold возвращает false, если блокировка key уже взята этой транзакцией
func (s *txScope) hold(key string, lock *sync.Mutex) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.held[key]; ok {
		return false
	}
	s.held[key] = lock
	return true
}

func (s *txScope) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, lock := range s.held {
		lock.Unlock()
		delete(s.held, key)
	}
}

// TxManager менеджер "транзакций" для хранилища в памяти
// Транзакции выполняются параллельно; взаимное исключение дают только блокировки дней Store.LockDays.
// Откат не поддерживается: функции use case пишут только последним шагом.
type TxManager struct {
	mu    sync.Mutex
	calls int
}

// NewTxManager создает менеджер транзакций
func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Calls количество выполненных транзакций
func (m *TxManager) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	// Вложенный вызов переиспользует транзакцию
	if _, ok := scopeFromContext(ctx); ok {
		return fn(ctx)
	}

	scope := &txScope{held: make(map[string]*sync.Mutex)}
	defer scope.release()

	return fn(context.WithValue(ctx, txScopeKey{}, scope))
}
