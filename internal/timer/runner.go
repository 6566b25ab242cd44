package timer

import (
	"context"
	"time"
)

// Ticker источник секундных тиков. В тестах подменяется ручным.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory создает Ticker с заданным периодом.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker оборачивает time.Ticker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Run вызывает t.Tick на каждый тик ticker, пока отсчет не завершится
// или не будет отменен ctx.
func Run(ctx context.Context, t *Timer, ticker Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if t.Tick() {
				return
			}
		}
	}
}
