package billing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog(PriceIDs{Premium: "price_premium", Enterprise: "price_ent"})

	free, ok := c.Lookup("free")
	require.True(t, ok)
	assert.Zero(t, free.Price)
	assert.Empty(t, free.PriceID)

	premium, ok := c.Lookup(" Premium ")
	require.True(t, ok)
	assert.Equal(t, "price_premium", premium.PriceID)
	assert.Equal(t, "month", premium.Interval)

	_, ok = c.Lookup("gold")
	assert.False(t, ok)
}

func TestCatalogOrderAndImmutability(t *testing.T) {
	c := NewCatalog(PriceIDs{})
	plans := c.Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, []string{"Free", "Premium", "Enterprise"}, []string{plans[0].Name, plans[1].Name, plans[2].Name})
	assert.Less(t, plans[1].Price, plans[2].Price)

	plans[0].Features[0] = "changed"
	again, _ := c.Lookup(PlanFree)
	assert.Equal(t, "Public profile", again.Features[0])
}

func TestProviderMessage(t *testing.T) {
	assert.Empty(t, ProviderMessage(nil))
	assert.Equal(t, "boom", ProviderMessage(errors.New("boom")))

	se := &stripe.Error{Msg: "No such customer: 'cus_missing'"}
	wrapped := fmt.Errorf("create portal session: %w", se)
	assert.Equal(t, "No such customer: 'cus_missing'", ProviderMessage(wrapped))
}
