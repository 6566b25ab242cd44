// Package timer реализует обратный отсчет сессии помодоро с секундной дискретностью.
//
// Таймер является конечным автоматом idle → running ⇄ paused → completed. События тиков
// и завершения доставляются подписчикам через каналы, сам таймер не знает,
// кто и как их отображает.
package timer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// State состояние таймера.
type State string

// Состояния таймера
const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// EventKind тип события таймера.
type EventKind string

// Типы событий
const (
	EventTick      EventKind = "tick"
	EventCompleted EventKind = "completed"
)

// ErrInvalidTransition недопустимый переход между состояниями.
var ErrInvalidTransition = errors.New("invalid timer state transition")

// ErrInvalidDuration длительность должна быть положительной.
var ErrInvalidDuration = errors.New("timer duration must be positive")

// Event событие, рассылаемое подписчикам.
type Event struct {
	Kind        EventKind `json:"kind"`
	SessionType string    `json:"session_type"`
	Duration    int       `json:"duration"`
	Remaining   int       `json:"remaining"`
}

// Snapshot состояние таймера на момент вызова.
type Snapshot struct {
	SessionType string `json:"session_type"`
	Duration    int    `json:"duration"`
	Remaining   int    `json:"remaining"`
	State       State  `json:"state"`
}

type subscriber struct {
	ch   chan Event
	size int
}

// Timer обратный отсчет одной сессии. Безопасен для конкурентного использования.
type Timer struct {
	mu          sync.Mutex
	sessionType string
	duration    int
	remaining   int
	state       State
	subscribers []subscriber
}

// New создает таймер в состоянии idle.
func New(sessionType string, duration int) (*Timer, error) {
	if err := validate(sessionType, duration); err != nil {
		return nil, err
	}
	return &Timer{
		sessionType: sessionType,
		duration:    duration,
		remaining:   duration,
		state:       StateIdle,
	}, nil
}

func validate(sessionType string, duration int) error {
	switch sessionType {
	case models.SessionFocus, models.SessionBreak, models.SessionLongBreak:
	default:
		return fmt.Errorf("unknown session type %q", sessionType)
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Subscribe возвращает канал событий, в котором буферизуется до size тиков.
// Лишние тики отбрасываются. Для события завершения в буфере всегда есть место,
// после него канал закрывается. Отсчет никогда не ждет подписчика.
func (t *Timer) Subscribe(size int) <-chan Event {
	if size < 0 {
		size = 0
	}
	ch := make(chan Event, size+1)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateCompleted {
		ch <- Event{Kind: EventCompleted, SessionType: t.sessionType, Duration: t.duration}
		close(ch)
		return ch
	}
	t.subscribers = append(t.subscribers, subscriber{ch: ch, size: size})
	return ch
}

// Start запускает отсчет из состояния idle.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateIdle {
		return fmt.Errorf("start from %s: %w", t.state, ErrInvalidTransition)
	}
	t.state = StateRunning
	return nil
}

// Pause останавливает отсчет, не сбрасывая оставшееся время.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning {
		return fmt.Errorf("pause from %s: %w", t.state, ErrInvalidTransition)
	}
	t.state = StatePaused
	return nil
}

// Resume продолжает отсчет с того же значения.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StatePaused {
		return fmt.Errorf("resume from %s: %w", t.state, ErrInvalidTransition)
	}
	t.state = StateRunning
	return nil
}

// Reset возвращает полную длительность и состояние idle.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = t.duration
	t.state = StateIdle
}

// Switch меняет тип сессии и длительность, таймер переходит в idle.
func (t *Timer) Switch(sessionType string, duration int) error {
	if err := validate(sessionType, duration); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessionType = sessionType
	t.duration = duration
	t.remaining = duration
	t.state = StateIdle
	return nil
}

// Tick уменьшает оставшееся время на секунду, если таймер запущен.
// Возвращает true, когда этим тиком отсчет завершился.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning {
		return false
	}
	t.remaining--
	ev := Event{Kind: EventTick, SessionType: t.sessionType, Duration: t.duration, Remaining: t.remaining}
	for _, sub := range t.subscribers {
		// последнее место в буфере оставлено под завершение
		if len(sub.ch) < sub.size {
			sub.ch <- ev
		}
	}
	if t.remaining > 0 {
		return false
	}

	t.state = StateCompleted
	ev.Kind = EventCompleted
	for _, sub := range t.subscribers {
		sub.ch <- ev
		close(sub.ch)
	}
	t.subscribers = nil
	return true
}

// Snapshot возвращает текущее состояние.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		SessionType: t.sessionType,
		Duration:    t.duration,
		Remaining:   t.remaining,
		State:       t.state,
	}
}
