package stripe

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
	"github.com/stripe/stripe-go/v84/webhook"
)

// CheckoutSessionInput carries everything needed to open a hosted checkout
// session for an order.
type CheckoutSessionInput struct {
	OrderID       string
	CustomerEmail string
	Amount        decimal.Decimal
	Currency      string
	SuccessURL    string
	CancelURL     string
	Description   string
}

// CheckoutSession is the normalized subset of the provider session used here.
type CheckoutSession struct {
	SessionID     string
	URL           string
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

// CheckoutSessionClient exposes the subset of Stripe checkout operations the
// payments service needs, so it can be stubbed in tests.
type CheckoutSessionClient interface {
	Create(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error)
	Retrieve(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type checkoutClientWrapper struct{}

// NewCheckoutSessionClient wraps the package-level Stripe bindings. The
// provided client only gates construction; the API key is process-global.
func NewCheckoutSessionClient(api *Client) CheckoutSessionClient {
	if api == nil {
		return nil
	}
	return &checkoutClientWrapper{}
}

func (w *checkoutClientWrapper) Create(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error) {
	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}
	description := input.Description
	if description == "" {
		description = "Urban Threads order"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(input.SuccessURL),
		CancelURL:     stripe.String(input.CancelURL),
		CustomerEmail: stripe.String(input.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(toCents(input.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", input.OrderID)
	params.AddMetadata("customer_email", input.CustomerEmail)
	params.AddMetadata("source", "urban_threads_checkout")

	created, err := session.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(created), nil
}

func (w *checkoutClientWrapper) Retrieve(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	got, err := session.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(got), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	if s == nil {
		return nil
	}
	return &CheckoutSession{
		SessionID:     s.ID,
		URL:           s.URL,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ConstructWebhookEvent verifies the signature header and parses the payload.
func (c *Client) ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, c.SigningSecret())
}
