package billing

import (
	"context"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// Gateway операции платежного провайдера, которые нужны сервису.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, name, accountID string) (string, error)
	CreateSubscription(ctx context.Context, customerID, priceID string) (*stripe.Subscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error)
}

// StripeGateway реализация Gateway поверх клиента Stripe.
type StripeGateway struct {
	sc *client.API
}

// NewStripeGateway создает клиента Stripe с секретным ключом key.
func NewStripeGateway(key string) *StripeGateway {
	sc := &client.API{}
	sc.Init(key, nil)
	return &StripeGateway{sc: sc}
}

// CreateCustomer создает клиента и помечает его id аккаунта.
func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name, accountID string) (string, error) {
	params := &stripe.CustomerParams{
		Email:    stripe.String(email),
		Name:     stripe.String(name),
		Metadata: map[string]string{"account_id": accountID},
	}
	params.Context = ctx
	cust, err := g.sc.Customers.New(params)
	if err != nil {
		return "", err
	}
	return cust.ID, nil
}

// CreateSubscription создает неоплаченную подписку и раскрывает payment intent первого счета.
func (g *StripeGateway) CreateSubscription(ctx context.Context, customerID, priceID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{
		Customer:        stripe.String(customerID),
		Items:           []*stripe.SubscriptionItemsParams{{Price: stripe.String(priceID)}},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")
	return g.sc.Subscriptions.New(params)
}

// GetSubscription возвращает подписку вместе с payment intent последнего счета.
func (g *StripeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")
	return g.sc.Subscriptions.Get(subscriptionID, params)
}
