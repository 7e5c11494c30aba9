package billing

import "context"

// Subscription is the provider's view of one customer subscription.
type Subscription struct {
	ID         string
	CustomerID string
	Active     bool
}

// Provider is the billing capability surface. The billing vendor stays
// the source of truth; this core only asks yes/no questions of it and
// hands checkout off to the vendor's hosted page.
type Provider interface {
	SubscriptionActive(ctx context.Context, subID string) (bool, error)
	SubscriptionForCustomer(ctx context.Context, customerRef string) (*Subscription, error)

	// CreateCheckoutSession returns the vendor-hosted checkout URL the
	// client should be redirected to. customerRef may be empty for a
	// first-time purchase; the vendor creates the customer from email.
	CreateCheckoutSession(ctx context.Context, customerRef, email, successURL, cancelURL string) (string, error)
}

// NoOpProvider reports every subscription inactive and offers no checkout.
type NoOpProvider struct{}

func (p *NoOpProvider) SubscriptionActive(ctx context.Context, subID string) (bool, error) {
	return false, nil
}

func (p *NoOpProvider) SubscriptionForCustomer(ctx context.Context, customerRef string) (*Subscription, error) {
	return nil, nil
}

func (p *NoOpProvider) CreateCheckoutSession(ctx context.Context, customerRef, email, successURL, cancelURL string) (string, error) {
	return "", nil
}
