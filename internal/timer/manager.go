package timer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrNoTimer у аккаунта нет активного таймера.
var ErrNoTimer = errors.New("no live timer for account")

// ErrTimerActive у аккаунта уже идет отсчет.
var ErrTimerActive = errors.New("live timer already active")

// Listener получает уведомление о завершении отсчета.
type Listener interface {
	TimerCompleted(ctx context.Context, accountID string, s Snapshot)
}

type entry struct {
	timer  *Timer
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager хранит живые таймеры по аккаунтам и крутит для каждого свой Run.
// Создается один раз при старте приложения и передается обработчикам.
type Manager struct {
	ctx       context.Context
	log       *slog.Logger
	newTicker TickerFactory
	listener  Listener

	mu     sync.Mutex
	timers map[string]*entry
}

// NewManager создает Manager. Все горутины таймеров останавливаются при отмене ctx.
func NewManager(ctx context.Context, log *slog.Logger, newTicker TickerFactory, listener Listener) *Manager {
	if newTicker == nil {
		newTicker = NewRealTicker
	}
	return &Manager{
		ctx:       ctx,
		log:       log,
		newTicker: newTicker,
		listener:  listener,
		timers:    make(map[string]*entry),
	}
}

// Start создает и запускает таймер аккаунта.
// Завершенный или сброшенный таймер заменяется новым.
func (m *Manager) Start(accountID, sessionType string, duration int) (Snapshot, error) {
	const op = "timer.Manager.Start"

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.timers[accountID]; ok {
		switch e.timer.Snapshot().State {
		case StateRunning, StatePaused:
			return Snapshot{}, ErrTimerActive
		}
		e.cancel()
	}

	t, err := New(sessionType, duration)
	if err != nil {
		return Snapshot{}, err
	}
	events := t.Subscribe(0)
	if err := t.Start(); err != nil {
		return Snapshot{}, err
	}

	ctx, cancel := context.WithCancel(m.ctx)
	e := &entry{timer: t, cancel: cancel, done: make(chan struct{})}
	m.timers[accountID] = e

	ticker := m.newTicker(time.Second)
	go m.run(ctx, accountID, e, ticker, events)

	m.log.Debug("live timer started",
		slog.String("op", op),
		slog.String("account_id", accountID),
		slog.String("session_type", sessionType),
		slog.Int("duration", duration),
	)
	return t.Snapshot(), nil
}

func (m *Manager) run(ctx context.Context, accountID string, e *entry, ticker Ticker, events <-chan Event) {
	defer close(e.done)
	Run(ctx, e.timer, ticker)

	// после остановки Run событие завершения, если оно было, уже лежит в буфере
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Kind == EventCompleted {
				m.completed(accountID, ev)
			}
		default:
			return
		}
	}
}

func (m *Manager) completed(accountID string, ev Event) {
	m.log.Info("live timer completed",
		slog.String("account_id", accountID),
		slog.String("session_type", ev.SessionType),
	)
	if m.listener != nil {
		m.listener.TimerCompleted(m.ctx, accountID, Snapshot{
			SessionType: ev.SessionType,
			Duration:    ev.Duration,
			Remaining:   ev.Remaining,
			State:       StateCompleted,
		})
	}
}

// Pause ставит таймер аккаунта на паузу.
func (m *Manager) Pause(accountID string) (Snapshot, error) {
	t, err := m.get(accountID)
	if err != nil {
		return Snapshot{}, err
	}
	if err := t.Pause(); err != nil {
		return Snapshot{}, err
	}
	return t.Snapshot(), nil
}

// Resume продолжает отсчет после паузы.
func (m *Manager) Resume(accountID string) (Snapshot, error) {
	t, err := m.get(accountID)
	if err != nil {
		return Snapshot{}, err
	}
	if err := t.Resume(); err != nil {
		return Snapshot{}, err
	}
	return t.Snapshot(), nil
}

// Reset останавливает отсчет и удаляет таймер аккаунта.
func (m *Manager) Reset(accountID string) (Snapshot, error) {
	m.mu.Lock()
	e, ok := m.timers[accountID]
	if ok {
		delete(m.timers, accountID)
	}
	m.mu.Unlock()
	if !ok {
		return Snapshot{}, ErrNoTimer
	}

	e.timer.Reset()
	e.cancel()
	<-e.done
	return e.timer.Snapshot(), nil
}

// Switch останавливает отсчет аккаунта и готовит таймер с новым типом сессии
// и длительностью в состоянии idle. Если таймера нет, он создается.
func (m *Manager) Switch(accountID, sessionType string, duration int) (Snapshot, error) {
	if err := validate(sessionType, duration); err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	e, ok := m.timers[accountID]
	if !ok {
		t, err := New(sessionType, duration)
		if err != nil {
			m.mu.Unlock()
			return Snapshot{}, err
		}
		m.timers[accountID] = idleEntry(t)
		m.mu.Unlock()
		return t.Snapshot(), nil
	}
	m.mu.Unlock()

	e.cancel()
	<-e.done
	if err := e.timer.Switch(sessionType, duration); err != nil {
		return Snapshot{}, err
	}
	return e.timer.Snapshot(), nil
}

func idleEntry(t *Timer) *entry {
	done := make(chan struct{})
	close(done)
	return &entry{timer: t, cancel: func() {}, done: done}
}

// Get возвращает состояние таймера аккаунта.
func (m *Manager) Get(accountID string) (Snapshot, error) {
	t, err := m.get(accountID)
	if err != nil {
		return Snapshot{}, err
	}
	return t.Snapshot(), nil
}

// Close останавливает все таймеры и ждет их горутины.
func (m *Manager) Close() {
	m.mu.Lock()
	entries := make([]*entry, 0, len(m.timers))
	for id, e := range m.timers {
		entries = append(entries, e)
		delete(m.timers, id)
	}
	m.mu.Unlock()

	for _, e := range entries {
		e.cancel()
		<-e.done
	}
}

func (m *Manager) get(accountID string) (*Timer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.timers[accountID]
	if !ok {
		return nil, ErrNoTimer
	}
	return e.timer, nil
}
