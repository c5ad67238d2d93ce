package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AllKinds(t *testing.T) {
	creds := Credentials{APIKey: "key", Subdomain: "acme"}

	for _, kind := range []Kind{KindCustomer, KindProduct, KindProductFamily, KindSubscription, KindCreditCard} {
		r, err := New(kind, creds)
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, kind, r.Kind())
		assert.Equal(t, creds, r.Credentials())
		assert.Empty(t, r.ResourceID(), "fresh entities have no identifier")
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(Kind("invoice"), Credentials{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invoice")
}

func TestCredentials_Host(t *testing.T) {
	creds := Credentials{APIKey: "key", Subdomain: "acme"}
	assert.Equal(t, "acme.chargify.com", creds.Host())

	creds.BaseHost = ".example.test"
	assert.Equal(t, "acme.example.test", creds.Host())
}

func TestNodeNameDefaultsAndOverride(t *testing.T) {
	cases := []struct {
		r    Resource
		want string
	}{
		{&Customer{}, "customer"},
		{&Product{}, "product"},
		{&ProductFamily{}, "product_family"},
		{&Subscription{}, "subscription"},
		{&CreditCard{}, "credit_card_attributes"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.r.NodeName())

		tc.r.SetNodeName("renamed")
		assert.Equal(t, "renamed", tc.r.NodeName())
	}
}

func TestProduct_PriceHelpers(t *testing.T) {
	p := &Product{ID: "42", PriceInCents: 1999}
	p.SetCredentials(Credentials{APIKey: "key", Subdomain: "acme"})

	assert.True(t, p.PriceInDollars().Equal(decimal.RequireFromString("19.99")),
		"got %s", p.PriceInDollars())
	assert.Equal(t, "$19.99", p.FormattedPrice())
	assert.Equal(t, "https://acme.chargify.com/h/42/subscriptions/new", p.PaymentPageUrl())
}

func TestProduct_PriceRounding(t *testing.T) {
	p := &Product{PriceInCents: 1000}
	assert.Equal(t, "$10.00", p.FormattedPrice())

	p.PriceInCents = 5
	assert.Equal(t, "$0.05", p.FormattedPrice())
}

func TestSubscription_AttributeTypes(t *testing.T) {
	s := &Subscription{}
	types := s.AttributeTypes()

	assert.Equal(t, KindCustomer, types["customer"])
	assert.Equal(t, KindProduct, types["product"])
	assert.Equal(t, KindCreditCard, types["credit_card"])
	assert.Equal(t, KindCreditCard, types["credit_card_attributes"])
}
