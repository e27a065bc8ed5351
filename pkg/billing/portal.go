// Package billing mints hosted billing-portal sessions and describes the
// subscription plans offered to customers.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PortalSessionCreator returns the URL of a time-limited portal session for
// a customer that redirects back to returnURL when the customer is done.
type PortalSessionCreator interface {
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// StripePortal creates portal sessions through the Stripe API.
type StripePortal struct {
	api *client.API
}

func NewStripePortal(secretKey string) *StripePortal {
	return &StripePortal{api: client.New(secretKey, nil)}
}

func (p *StripePortal) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx
	sess, err := p.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	if sess.URL == "" {
		return "", errors.New("create portal session: provider returned no url")
	}
	return sess.URL, nil
}

// ProviderMessage returns the message reported by the billing provider when
// err carries one, otherwise the error text.
func ProviderMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return se.Msg
	}
	return err.Error()
}
