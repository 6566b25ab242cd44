package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

func ptr[T any](v T) *T { return &v }

func TestStorage_Accounts(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()

	first, err := s.UpsertAccount(ctx, models.Identity{Subject: "idp|1", Email: "ann@example.com", FirstName: "Ann"})
	require.NoError(t, err)
	assert.False(t, first.IsPremium)
	require.NotNil(t, first.Email)

	// повторный вход не сдвигает начало пробного периода и не стирает профиль
	second, err := s.UpsertAccount(ctx, models.Identity{Subject: "idp|1", LastName: "Lee"})
	require.NoError(t, err)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, "ann@example.com", *second.Email)
	assert.Equal(t, "Ann Lee", second.DisplayName())

	_, err = s.GetAccount(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.SetStripeCustomer(ctx, "idp|1", "cus_1"))
	accountID, err := s.SetPremiumByCustomer(ctx, "cus_1", "sub_1", true)
	require.NoError(t, err)
	assert.Equal(t, "idp|1", accountID)
	got, err := s.GetAccount(ctx, "idp|1")
	require.NoError(t, err)
	assert.True(t, got.IsPremium)
	assert.Equal(t, "sub_1", *got.StripeSubscriptionID)

	_, err = s.SetPremiumByCustomer(ctx, "cus_1", "", false)
	require.NoError(t, err)
	got, err = s.GetAccount(ctx, "idp|1")
	require.NoError(t, err)
	assert.False(t, got.IsPremium)
	assert.Equal(t, "sub_1", *got.StripeSubscriptionID)

	_, err = s.SetPremiumByCustomer(ctx, "cus_unknown", "", true)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_ListTrialAndReminderCandidates(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	now := time.Now().UTC()

	fresh := createAccount(t, s, "fresh@example.com", now.Add(-6*24*time.Hour))
	createAccount(t, s, "old@example.com", now.Add(-30*24*time.Hour))
	createAccount(t, s, "", now)

	trial, err := s.ListTrialAccounts(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, trial, 1)
	assert.Equal(t, fresh.ID, trial[0].ID)

	_, err = s.UpsertSettings(ctx, models.DefaultSettings(fresh.ID, 2))
	require.NoError(t, err)

	today := now.Format("2006-01-02")
	candidates, err := s.ListReminderCandidates(ctx, today)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, 2, candidates[0].DailyGoal)
	assert.Equal(t, "fresh@example.com", candidates[0].Name)

	_, err = s.IncrementStreak(ctx, fresh.ID, today, 25, 2)
	require.NoError(t, err)
	_, err = s.IncrementStreak(ctx, fresh.ID, today, 25, 2)
	require.NoError(t, err)

	candidates, err = s.ListReminderCandidates(ctx, today)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestStorage_Sessions(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	acc := createAccount(t, s, "s@example.com", time.Now())

	focus, err := s.CreateSession(ctx, acc.ID, models.DummySession{Type: models.SessionFocus, Duration: 1500})
	require.NoError(t, err)
	assert.False(t, focus.IsCompleted)
	assert.Nil(t, focus.TaskID)

	_, err = s.CreateSession(ctx, acc.ID, models.DummySession{Type: models.SessionBreak, Duration: 300})
	require.NoError(t, err)

	done := time.Now()
	paused, err := s.UpdateSession(ctx, acc.ID, focus.ID, models.SessionUpdate{
		PauseCount:  ptr(2),
		IsCompleted: ptr(true),
		XPEarned:    ptr(99),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, paused.PauseCount)
	assert.False(t, paused.IsCompleted)
	assert.Zero(t, paused.XPEarned)

	updated, err := s.CompleteSession(ctx, acc.ID, focus.ID, models.SessionUpdate{
		CompletedDuration: ptr(1500),
		CompletedAt:       &done,
		XPEarned:          ptr(25),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, 25, updated.XPEarned)
	assert.Equal(t, 2, updated.PauseCount)

	// повторное завершение не проходит
	_, err = s.CompleteSession(ctx, acc.ID, focus.ID, models.SessionUpdate{XPEarned: ptr(25)})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateSession(ctx, "other", focus.ID, models.SessionUpdate{PauseCount: ptr(1)})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := s.ListSessions(ctx, acc.ID, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	inRange, err := s.ListSessionsInRange(ctx, acc.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	sum, err := s.AnalyticsSummary(ctx, acc.ID, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1500, sum.TotalFocusTime)
	assert.Equal(t, 1, sum.CompletedSessions)
	assert.Zero(t, sum.CompletedBreaks)
}

func TestStorage_Streaks(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	acc := createAccount(t, s, "st@example.com", time.Now())

	ds, err := s.IncrementStreak(ctx, acc.ID, "2025-03-10", 25, 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", ds.Date)
	assert.False(t, ds.GoalMet)

	ds, err = s.IncrementStreak(ctx, acc.ID, "2025-03-10", 25, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.SessionsCompleted)
	assert.Equal(t, 50, ds.FocusTimeMinutes)
	assert.True(t, ds.GoalMet)

	_, err = s.UpsertStreak(ctx, models.DailyStreak{AccountID: acc.ID, Date: "2025-03-09", SessionsCompleted: 4, GoalMet: true})
	require.NoError(t, err)
	_, err = s.UpsertStreak(ctx, models.DailyStreak{AccountID: acc.ID, Date: "2025-03-08", SessionsCompleted: 1})
	require.NoError(t, err)

	all, err := s.ListStreaks(ctx, acc.ID, 30)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-10", all[0].Date)

	met, err := s.ListGoalMetStreaks(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, met, 2)
	assert.Equal(t, "2025-03-09", met[1].Date)
}

func TestStorage_TasksAndGame(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	acc := createAccount(t, s, "t@example.com", time.Now())

	task, err := s.CreateTask(ctx, acc.ID, models.DummyTask{Title: "Write report", Tags: []string{"work", "q1"}})
	require.NoError(t, err)
	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, []string{"work", "q1"}, task.Tags)

	task, err = s.UpdateTask(ctx, acc.ID, task.ID, models.TaskUpdate{IsCompleted: ptr(true)})
	require.NoError(t, err)
	assert.True(t, task.IsCompleted)
	assert.NotNil(t, task.CompletedAt)
	assert.Equal(t, []string{"work", "q1"}, task.Tags)

	require.NoError(t, s.AddTaskFocus(ctx, acc.ID, task.ID, 1500))
	task, err = s.GetTask(ctx, acc.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500, task.TotalFocusTime)
	assert.Equal(t, 1, task.SessionCount)

	require.NoError(t, s.DeleteTask(ctx, acc.ID, task.ID))
	assert.ErrorIs(t, s.DeleteTask(ctx, acc.ID, task.ID), storage.ErrNotFound)

	g, err := s.GetOrCreateGameData(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, g.CurrentLevel)
	assert.Equal(t, 100, g.XPToNextLevel)

	g, err = s.AddXP(ctx, acc.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, g.TotalXP)
	assert.Equal(t, 3, g.CurrentLevel)
	assert.Equal(t, 50, g.XPToNextLevel)

	achievements, err := s.ListAchievements(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, achievements)
}

func TestStorage_Social(t *testing.T) {
	s := setupTestDatabase(t)
	ctx := context.Background()
	acc := createAccount(t, s, "c@example.com", time.Now())
	now := time.Now()

	quotes, err := s.ListActiveQuotes(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, quotes)

	msg, err := s.SaveChatMessage(ctx, models.ChatMessage{
		AccountID: acc.ID, Message: "I keep pausing", IsUserMessage: true,
		AIResponse: ptr("Take a breath."), Context: models.ChatContextPause,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)

	history, err := s.ListChatMessages(ctx, acc.ID, 50)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Take a breath.", *history[0].AIResponse)

	_, err = s.CreateScreenUsage(ctx, models.ScreenUsageLog{AccountID: acc.ID, DistractionCount: 2, FocusTime: 900, AwayTime: 100})
	require.NoError(t, err)
	ts, err := s.CreateSession(ctx, acc.ID, models.DummySession{Type: models.SessionFocus, Duration: 1500})
	require.NoError(t, err)
	_, err = s.CreateScreenUsage(ctx, models.ScreenUsageLog{AccountID: acc.ID, SessionID: &ts.ID, DistractionCount: 1, FocusTime: 600})
	require.NoError(t, err)

	logs, err := s.ListScreenUsage(ctx, acc.ID, nil, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	logs, err = s.ListScreenUsage(ctx, acc.ID, &ts.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1, logs[0].DistractionCount)

	challenges, err := s.ListActiveChallenges(ctx, now)
	require.NoError(t, err)
	require.NotEmpty(t, challenges)

	var small *models.Challenge
	for _, c := range challenges {
		if small == nil || c.TargetSessions < small.TargetSessions {
			small = c
		}
	}

	p, err := s.JoinChallenge(ctx, acc.ID, small.ID, now)
	require.NoError(t, err)
	assert.Zero(t, p.CurrentSessions)
	_, err = s.JoinChallenge(ctx, acc.ID, small.ID, now)
	require.NoError(t, err, "joining twice keeps the existing progress")

	_, err = s.JoinChallenge(ctx, acc.ID, "00000000-0000-0000-0000-000000000000", now)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	reward := 0
	for range small.TargetSessions {
		r, err := s.BumpChallenges(ctx, acc.ID, time.Now())
		require.NoError(t, err)
		reward += r
	}
	assert.Equal(t, small.XPReward, reward)

	r, err := s.BumpChallenges(ctx, acc.ID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, r, "completed challenges are not bumped again")

	progress, err := s.ListChallengeProgress(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.True(t, progress[0].Progress.IsCompleted)
}
