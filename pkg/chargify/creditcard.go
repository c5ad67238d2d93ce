package chargify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/getyouridx/pychargify/pkg/codec"
	"github.com/getyouridx/pychargify/pkg/entity"
)

// CreditCardService updates the payment method on a subscription.
type CreditCardService struct {
	client *Client
}

// Save attaches card to the subscription identified by subscriptionID. The
// API models this as a subscription update whose body carries only the
// card's payment fields, and answers with the updated subscription.
func (s *CreditCardService) Save(ctx context.Context, subscriptionID string, card *entity.CreditCard) (*entity.Subscription, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	sub := doc.CreateElement("subscription")
	attrs := sub.CreateElement("credit_card_attributes")
	attrs.CreateElement("full_number").SetText(card.FullNumber)
	attrs.CreateElement("expiration_month").SetText(strconv.Itoa(card.ExpirationMonth))
	attrs.CreateElement("expiration_year").SetText(strconv.Itoa(card.ExpirationYear))
	attrs.CreateElement("cvv").SetText(card.CVV)
	attrs.CreateElement("first_name").SetText(card.FirstName)
	attrs.CreateElement("last_name").SetText(card.LastName)
	attrs.CreateElement("zip").SetText(card.Zip)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("chargify: build credit card body: %w", err)
	}

	data, err := s.client.transport.Put(ctx, "/subscriptions/"+subscriptionID+".xml", body)
	if err != nil {
		return nil, err
	}
	r, err := codec.DecodeOne(data, entity.KindSubscription, "subscription", s.client.creds)
	if err != nil || r == nil {
		return nil, err
	}
	return r.(*entity.Subscription), nil
}
