package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a billable customer record.
type Customer struct {
	Meta

	ID           string    `xml:"id"`
	FirstName    string    `xml:"first_name"`
	LastName     string    `xml:"last_name"`
	Email        string    `xml:"email"`
	Organization string    `xml:"organization"`
	Reference    string    `xml:"reference"`
	CreatedAt    time.Time `xml:"created_at"`
	ModifiedAt   time.Time `xml:"modified_at"`
}

func (c *Customer) Kind() Kind { return KindCustomer }
func (c *Customer) NodeName() string { return c.nodeOr("customer") }
func (c *Customer) AttributeTypes() map[string]Kind { return nil }
func (c *Customer) ResourceID() string { return c.ID }
func (c *Customer) LastUpdated() time.Time { return c.ModifiedAt }

// Product is a purchasable product with a recurring price.
type Product struct {
	Meta

	ID             string         `xml:"id"`
	PriceInCents   int            `xml:"price_in_cents"`
	Name           string         `xml:"name"`
	Handle         string         `xml:"handle"`
	Description    string         `xml:"description"`
	AccountingCode string         `xml:"accounting_code"`
	IntervalUnit   string         `xml:"interval_unit"`
	Interval       int            `xml:"interval"`
	CreatedAt      time.Time      `xml:"created_at"`
	UpdatedAt      time.Time      `xml:"updated_at"`
	ProductFamily  *ProductFamily `xml:"product_family"`
}

func (p *Product) Kind() Kind { return KindProduct }
func (p *Product) NodeName() string { return p.nodeOr("product") }

func (p *Product) AttributeTypes() map[string]Kind {
	return map[string]Kind{"product_family": KindProductFamily}
}

func (p *Product) ResourceID() string { return p.ID }
func (p *Product) LastUpdated() time.Time { return p.UpdatedAt }

// PaymentPageUrl returns the hosted signup page for the product.
func (p *Product) PaymentPageUrl() string {
	return "https://" + p.Credentials().Host() + "/h/" + p.ID + "/subscriptions/new"
}

// PriceInDollars returns the price converted from cents to major units,
// rounded to two decimal places.
func (p *Product) PriceInDollars() decimal.Decimal {
	return decimal.New(int64(p.PriceInCents), -2).Round(2)
}

// FormattedPrice returns the price as a display string, e.g. "$19.99".
func (p *Product) FormattedPrice() string {
	return "$" + p.PriceInDollars().StringFixed(2)
}

// ProductFamily groups related products.
type ProductFamily struct {
	Meta

	ID             string `xml:"id"`
	Name           string `xml:"name"`
	Handle         string `xml:"handle"`
	AccountingCode string `xml:"accounting_code"`
	Description    string `xml:"description"`
}

func (f *ProductFamily) Kind() Kind { return KindProductFamily }
func (f *ProductFamily) NodeName() string { return f.nodeOr("product_family") }
func (f *ProductFamily) AttributeTypes() map[string]Kind { return nil }
func (f *ProductFamily) ResourceID() string { return f.ID }
func (f *ProductFamily) LastUpdated() time.Time { return time.Time{} }

// Subscription ties a customer to a product, optionally carrying the credit
// card used for payment. The customer, product and credit_card children of a
// subscription document decode into fully-formed nested entities.
type Subscription struct {
	Meta

	ID                     string      `xml:"id"`
	State                  string      `xml:"state"`
	BalanceInCents         int         `xml:"balance_in_cents"`
	CurrentPeriodStartedAt time.Time   `xml:"current_period_started_at"`
	CurrentPeriodEndsAt    time.Time   `xml:"current_period_ends_at"`
	TrialStartedAt         time.Time   `xml:"trial_started_at"`
	TrialEndedAt           time.Time   `xml:"trial_ended_at"`
	ActivatedAt            time.Time   `xml:"activated_at"`
	ExpiresAt              time.Time   `xml:"expires_at"`
	CreatedAt              time.Time   `xml:"created_at"`
	UpdatedAt              time.Time   `xml:"updated_at"`
	ProductHandle          string      `xml:"product_handle"`
	CancellationMessage    string      `xml:"cancellation_message"`
	Customer               *Customer   `xml:"customer"`
	Product                *Product    `xml:"product"`
	CreditCard             *CreditCard `xml:"credit_card"`
}

func (s *Subscription) Kind() Kind { return KindSubscription }
func (s *Subscription) NodeName() string { return s.nodeOr("subscription") }

func (s *Subscription) AttributeTypes() map[string]Kind {
	return map[string]Kind{
		"customer":    KindCustomer,
		"product":     KindProduct,
		"credit_card": KindCreditCard,
		// Requests embed the card under its attributes node name; responses
		// use the bare tag. Both decode into the CreditCard field.
		"credit_card_attributes": KindCreditCard,
	}
}

func (s *Subscription) ResourceID() string { return s.ID }
func (s *Subscription) LastUpdated() time.Time { return s.UpdatedAt }

// CreditCard is the payment method attached to a subscription. Its node
// name is credit_card_attributes, the form the API expects in requests.
type CreditCard struct {
	Meta

	ID               string `xml:"id"`
	FirstName        string `xml:"first_name"`
	LastName         string `xml:"last_name"`
	FullNumber       string `xml:"full_number"`
	MaskedCardNumber string `xml:"masked_card_number"`
	ExpirationMonth  int    `xml:"expiration_month"`
	ExpirationYear   int    `xml:"expiration_year"`
	CVV              string `xml:"cvv"`
	Type             string `xml:"type"`
	BillingAddress   string `xml:"billing_address"`
	BillingCity      string `xml:"billing_city"`
	BillingState     string `xml:"billing_state"`
	BillingZip       string `xml:"billing_zip"`
	BillingCountry   string `xml:"billing_country"`
	Zip              string `xml:"zip"`
}

func (c *CreditCard) Kind() Kind { return KindCreditCard }
func (c *CreditCard) NodeName() string { return c.nodeOr("credit_card_attributes") }
func (c *CreditCard) AttributeTypes() map[string]Kind { return nil }
func (c *CreditCard) ResourceID() string { return c.ID }
func (c *CreditCard) LastUpdated() time.Time { return time.Time{} }

// Usage is a metered usage record reported against a subscription
// component. It is a plain value, not a Resource: the usage endpoint
// returns a flat triple per record.
type Usage struct {
	ID       string
	Quantity int
	Memo     string
}
