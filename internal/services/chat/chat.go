// Package chat реализует AI-коуча: сообщение пользователя уходит в OpenAI,
// при недоступности модели отвечает заготовленной фразой для контекста.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
)

// ErrEmptyMessage сообщение пользователя состоит из пробелов.
var ErrEmptyMessage = errors.New("message is empty")

// HistoryLimit количество сообщений истории, отдаваемых клиенту и модели.
const HistoryLimit = 50

const contextMessages = 6

const systemPrompt = "You are a concise, encouraging focus coach inside a pomodoro app. " +
	"Answer in at most three short sentences with one practical suggestion."

var fallbacks = map[string]string{
	models.ChatContextGeneral: "I understand you're having trouble staying focused. Here are some suggestions: " +
		"Try the 25-minute Pomodoro technique, eliminate distractions by turning off notifications, " +
		"and break large tasks into smaller ones.",
	models.ChatContextPause: "Taking breaks is normal! Remember why you started this session. " +
		"Try taking 3 deep breaths and getting back to your task. You've got this!",
	models.ChatContextFail: "Don't worry about incomplete sessions, they're part of the learning process. " +
		"Consider trying shorter 15-minute sessions next time, or identifying what distracted you.",
}

// Completer клиент чат-модели, его реализует *openai.Client.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Repository методы хранилища истории чата.
type Repository interface {
	SaveChatMessage(ctx context.Context, m models.ChatMessage) (*models.ChatMessage, error)
	ListChatMessages(ctx context.Context, accountID string, limit int) ([]*models.ChatMessage, error)
}

// Service сервис AI-коуча.
type Service struct {
	repo      Repository
	completer Completer
	model     string
	log       *slog.Logger
}

// New создает Service. При nil completer всегда используются заготовленные ответы.
func New(repo Repository, completer Completer, model string, log *slog.Logger) *Service {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &Service{repo: repo, completer: completer, model: model, log: log}
}

// Send сохраняет сообщение пользователя, получает ответ коуча и сохраняет его.
func (s *Service) Send(ctx context.Context, accountID string, in models.DummyChat) (*models.ChatReply, error) {
	const op = "chat.Send"
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyMessage)
	}
	if in.Context == "" {
		in.Context = models.ChatContextGeneral
	}

	_, err := s.repo.SaveChatMessage(ctx, models.ChatMessage{
		AccountID:     accountID,
		SessionID:     in.SessionID,
		Message:       in.Message,
		IsUserMessage: true,
		Context:       in.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	answer := s.answer(ctx, accountID, in)
	msg, err := s.repo.SaveChatMessage(ctx, models.ChatMessage{
		AccountID:  accountID,
		SessionID:  in.SessionID,
		Message:    in.Message,
		AIResponse: &answer,
		Context:    in.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.ChatReply{Response: answer, ChatMessage: msg}, nil
}

// History возвращает последние сообщения чата.
func (s *Service) History(ctx context.Context, accountID string) ([]*models.ChatMessage, error) {
	res, err := s.repo.ListChatMessages(ctx, accountID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("chat.History: %w", err)
	}
	return res, nil
}

func (s *Service) answer(ctx context.Context, accountID string, in models.DummyChat) string {
	log := s.log.With(slog.String("op", "chat.answer"), slog.String("account_id", accountID))
	if s.completer == nil {
		return Fallback(in.Context)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt + " Context: " + in.Context + "."},
	}
	messages = append(messages, s.recent(ctx, log, accountID)...)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: in.Message})

	resp, err := s.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: 200,
	})
	if err != nil {
		log.Warn("chat completion failed, using fallback", sl.Err(err))
		return Fallback(in.Context)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Warn("chat completion returned no content, using fallback")
		return Fallback(in.Context)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// recent переводит последние ответы коуча в историю диалога для модели, от старых к новым.
func (s *Service) recent(ctx context.Context, log *slog.Logger, accountID string) []openai.ChatCompletionMessage {
	history, err := s.repo.ListChatMessages(ctx, accountID, contextMessages)
	if err != nil {
		log.Warn("failed to load chat history", sl.Err(err))
		return nil
	}

	var res []openai.ChatCompletionMessage
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		if m.IsUserMessage || m.AIResponse == nil {
			continue
		}
		res = append(res,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: m.Message},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: *m.AIResponse},
		)
	}
	return res
}

// Fallback заготовленный ответ для контекста, неизвестный контекст считается общим.
func Fallback(chatContext string) string {
	if f, ok := fallbacks[chatContext]; ok {
		return f
	}
	return fallbacks[models.ChatContextGeneral]
}
