// Package streak считает серии дней, в которые пользователь выполнил дневную цель.
package streak

import (
	"time"

	"github.com/magabrotheeeer/focuszen/internal/models"
)

// DateLayout формат календарного дня в записях серий.
const DateLayout = "2006-01-02"

// DateKey возвращает календарный день момента t в часовом поясе loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// GoalMet вычисляет признак выполнения дневной цели.
func GoalMet(sessionsCompleted, dailyGoal int) bool {
	return sessionsCompleted >= dailyGoal
}

// Current возвращает длину текущей серии, отсчитывая назад от today.
//
// records отсортированы по дате по убыванию. На позиции i ожидается день
// today - i с выполненной целью, первая невыполненная запись обрывает серию. Если за сегодня записи нет,
// серия равна 0, даже если вчерашняя цепочка длинная.
func Current(records []models.DailyStreak, today string) int {
	day, err := time.Parse(DateLayout, today)
	if err != nil {
		panic("streak.Current: malformed today " + today)
	}

	current := 0
	for i, r := range records {
		if !r.GoalMet || r.Date != day.AddDate(0, 0, -i).Format(DateLayout) {
			break
		}
		current++
	}
	return current
}

// Longest возвращает самую длинную серию подряд идущих дней среди records.
// Порядок и дубликаты не важны, записи без выполненной цели игнорируются.
func Longest(records []models.DailyStreak) int {
	days := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.GoalMet {
			days[r.Date] = struct{}{}
		}
	}

	longest := 0
	for d := range days {
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			continue
		}
		// считаем только от начала цепочки
		if _, ok := days[t.AddDate(0, 0, -1).Format(DateLayout)]; ok {
			continue
		}
		run := 1
		for {
			t = t.AddDate(0, 0, 1)
			if _, ok := days[t.Format(DateLayout)]; !ok {
				break
			}
			run++
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
