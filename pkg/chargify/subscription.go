package chargify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/getyouridx/pychargify/pkg/codec"
	"github.com/getyouridx/pychargify/pkg/entity"
)

// SubscriptionService exposes subscriptions and their state transitions.
type SubscriptionService struct {
	client *Client
}

// List returns every subscription for the tenant.
func (s *SubscriptionService) List(ctx context.Context) ([]*entity.Subscription, error) {
	data, err := s.client.transport.Get(ctx, "/subscriptions.xml")
	if err != nil {
		return nil, err
	}
	return s.decodeMany(data)
}

// ListByCustomer returns the subscriptions held by one customer.
func (s *SubscriptionService) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Subscription, error) {
	data, err := s.client.transport.Get(ctx, "/customers/"+customerID+"/subscriptions.xml")
	if err != nil {
		return nil, err
	}
	return s.decodeMany(data)
}

// GetByID fetches one subscription. The response must contain exactly one
// subscription element; zero or several fail with
// codec.ErrMultipleOrNoResults.
func (s *SubscriptionService) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	data, err := s.client.transport.Get(ctx, "/subscriptions/"+id+".xml")
	if err != nil {
		return nil, err
	}
	r, err := codec.DecodeUnique(data, entity.KindSubscription, "subscription", s.client.creds)
	if err != nil {
		return nil, err
	}
	return r.(*entity.Subscription), nil
}

// Save creates or updates the subscription depending on identifier
// presence.
func (s *SubscriptionService) Save(ctx context.Context, sub *entity.Subscription) (bool, *entity.Subscription, error) {
	ok, saved, err := s.client.save(ctx, sub, "subscriptions", "subscription")
	if err != nil || saved == nil {
		return false, nil, err
	}
	return ok, saved.(*entity.Subscription), nil
}

// ResetBalance zeroes the subscription's balance. The API returns no
// document worth decoding; transport success is the result.
func (s *SubscriptionService) ResetBalance(ctx context.Context, id string) error {
	_, err := s.client.transport.Put(ctx, "/subscriptions/"+id+"/reset_balance.xml", nil)
	return err
}

// Reactivate restarts a canceled subscription.
func (s *SubscriptionService) Reactivate(ctx context.Context, id string) error {
	_, err := s.client.transport.Put(ctx, "/subscriptions/"+id+"/reactivate.xml", nil)
	return err
}

// Upgrade moves the subscription onto another product, identified by
// handle, and returns the updated subscription.
func (s *SubscriptionService) Upgrade(ctx context.Context, id, productHandle string) (*entity.Subscription, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("subscription")
	root.CreateElement("product_handle").SetText(productHandle)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("chargify: build upgrade body: %w", err)
	}

	data, err := s.client.transport.Put(ctx, "/subscriptions/"+id+".xml", body)
	if err != nil {
		return nil, err
	}
	r, err := codec.DecodeOne(data, entity.KindSubscription, "subscription", s.client.creds)
	if err != nil || r == nil {
		return nil, err
	}
	return r.(*entity.Subscription), nil
}

// Unsubscribe cancels the subscription, recording message as the
// cancellation reason. This is a remote state transition; the local entity
// is untouched.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, id, message string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("subscription")
	root.CreateElement("cancellation_message").SetText(message)
	body, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("chargify: build unsubscribe body: %w", err)
	}

	_, err = s.client.transport.Delete(ctx, "/subscriptions/"+id+".xml", body)
	return err
}

// RecordUsage reports metered usage against a subscription component and
// returns the usage records the server acknowledges. Children of each
// usage element in the response map positionally to id, memo and quantity.
func (s *SubscriptionService) RecordUsage(ctx context.Context, subscriptionID string, componentID, quantity int, memo string) ([]entity.Usage, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("usage")
	root.CreateElement("quantity").SetText(strconv.Itoa(quantity))
	root.CreateElement("memo").SetText(memo)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("chargify: build usage body: %w", err)
	}

	path := "/subscriptions/" + subscriptionID + "/components/" + strconv.Itoa(componentID) + "/usages.xml"
	data, err := s.client.transport.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return parseUsages(data)
}

func parseUsages(data []byte) ([]entity.Usage, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("chargify: parse usage response: %w", err)
	}

	var usages []entity.Usage
	for _, el := range doc.FindElements("//usage") {
		var fields []string
		for _, child := range el.ChildElements() {
			fields = append(fields, strings.TrimSpace(child.Text()))
		}
		var u entity.Usage
		if len(fields) > 0 {
			u.ID = fields[0]
		}
		if len(fields) > 1 {
			u.Memo = fields[1]
		}
		if len(fields) > 2 {
			u.Quantity, _ = strconv.Atoi(fields[2])
		}
		usages = append(usages, u)
	}
	return usages, nil
}

func (s *SubscriptionService) decodeMany(data []byte) ([]*entity.Subscription, error) {
	resources, err := codec.DecodeMany(data, entity.KindSubscription, "subscription", s.client.creds)
	if err != nil {
		return nil, err
	}
	return collect[*entity.Subscription](resources), nil
}
