// Package billing оформляет подписку через Stripe и обрабатывает его вебхуки,
// переключая признак премиума аккаунта.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/magabrotheeeer/focuszen/internal/lib/sl"
	"github.com/magabrotheeeer/focuszen/internal/models"
	"github.com/magabrotheeeer/focuszen/internal/storage"
)

var (
	// ErrNotConfigured ключ Stripe не задан.
	ErrNotConfigured = errors.New("subscription service not configured")
	// ErrNoEmail у аккаунта нет email для счета.
	ErrNoEmail = errors.New("no user email on file")
	// ErrInvalidSignature подпись вебхука не прошла проверку.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// Repository методы хранилища аккаунтов, которые меняет биллинг.
type Repository interface {
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	SetStripeCustomer(ctx context.Context, accountID, customerID string) error
	SetSubscription(ctx context.Context, accountID, subscriptionID string, premium bool) error
	SetPremiumByCustomer(ctx context.Context, customerID, subscriptionID string, premium bool) (string, error)
}

// Forgetter сбрасывает закешированную карточку аккаунта.
type Forgetter interface {
	Forget(ctx context.Context, accountID string)
}

// Service сервис биллинга.
type Service struct {
	gateway       Gateway
	repo          Repository
	accounts      Forgetter
	priceID       string
	webhookSecret string
	log           *slog.Logger
}

// New создает Service. При nil gateway оформление подписки возвращает ErrNotConfigured.
func New(gateway Gateway, repo Repository, accounts Forgetter, priceID, webhookSecret string, log *slog.Logger) *Service {
	return &Service{
		gateway:       gateway,
		repo:          repo,
		accounts:      accounts,
		priceID:       priceID,
		webhookSecret: webhookSecret,
		log:           log,
	}
}

// CreateSubscription возвращает client secret для оплаты подписки.
// Если подписка уже оформлялась, повторно используется она.
func (s *Service) CreateSubscription(ctx context.Context, accountID string) (*models.SubscriptionIntent, error) {
	const op = "billing.CreateSubscription"
	if s.gateway == nil {
		return nil, ErrNotConfigured
	}
	log := s.log.With(slog.String("op", op), slog.String("account_id", accountID))

	a, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if a.StripeSubscriptionID != nil && *a.StripeSubscriptionID != "" {
		sub, err := s.gateway.GetSubscription(ctx, *a.StripeSubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sub.Status != stripe.SubscriptionStatusCanceled {
			log.Info("reusing existing subscription", slog.String("subscription_id", sub.ID))
			return intent(sub), nil
		}
	}

	if a.Email == nil || *a.Email == "" {
		return nil, ErrNoEmail
	}

	customerID := ""
	if a.StripeCustomerID != nil {
		customerID = *a.StripeCustomerID
	}
	if customerID == "" {
		customerID, err = s.gateway.CreateCustomer(ctx, *a.Email, a.DisplayName(), accountID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := s.repo.SetStripeCustomer(ctx, accountID, customerID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	sub, err := s.gateway.CreateSubscription(ctx, customerID, s.priceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.SetSubscription(ctx, accountID, sub.ID, isPaid(sub.Status)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.accounts.Forget(ctx, accountID)

	log.Info("created subscription",
		slog.String("customer_id", customerID),
		slog.String("subscription_id", sub.ID),
		slog.String("status", string(sub.Status)),
	)
	return intent(sub), nil
}

// HandleWebhook проверяет подпись события и применяет его к аккаунту.
// События по неизвестным клиентам подтверждаются без изменений.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	const op = "billing.HandleWebhook"
	if s.webhookSecret == "" {
		return ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidSignature, err)
	}
	log := s.log.With(slog.String("op", op), slog.String("event_id", event.ID), slog.String("type", string(event.Type)))

	var customerID, subscriptionID string
	var premium bool
	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if sub.Customer != nil {
			customerID = sub.Customer.ID
		}
		subscriptionID = sub.ID
		premium = event.Type != "customer.subscription.deleted" && isPaid(sub.Status)
	case "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if inv.Subscription == nil {
			log.Debug("invoice without subscription, skipping")
			return nil
		}
		if inv.Customer != nil {
			customerID = inv.Customer.ID
		}
		subscriptionID = inv.Subscription.ID
		premium = true
	case "invoice.payment_failed":
		log.Warn("subscription payment failed")
		return nil
	default:
		log.Debug("ignoring webhook event")
		return nil
	}

	if customerID == "" {
		log.Warn("webhook event without customer")
		return nil
	}
	accountID, err := s.repo.SetPremiumByCustomer(ctx, customerID, subscriptionID, premium)
	if errors.Is(err, storage.ErrNotFound) {
		log.Warn("no account for stripe customer", slog.String("customer_id", customerID))
		return nil
	}
	if err != nil {
		log.Error("failed to update premium status", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.accounts.Forget(ctx, accountID)

	log.Info("premium status updated", slog.String("account_id", accountID), slog.Bool("premium", premium))
	return nil
}

func isPaid(status stripe.SubscriptionStatus) bool {
	return status == stripe.SubscriptionStatusActive || status == stripe.SubscriptionStatusTrialing
}

func intent(sub *stripe.Subscription) *models.SubscriptionIntent {
	res := &models.SubscriptionIntent{SubscriptionID: sub.ID, Status: string(sub.Status)}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		res.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return res
}
