package chargify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/getyouridx/pychargify/pkg/entity"
)

// PostBackService ingests postback notifications. Unlike every other
// endpoint the payload is JSON: an array of subscription identifiers.
type PostBackService struct {
	client *Client
}

// Process parses a postback payload and fetches each referenced
// subscription, preserving payload order. Identifiers may be JSON numbers
// or strings.
func (s *PostBackService) Process(ctx context.Context, payload []byte) ([]*entity.Subscription, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var ids []any
	if err := dec.Decode(&ids); err != nil {
		return nil, fmt.Errorf("chargify: decode postback payload: %w", err)
	}

	subscriptions := s.client.Subscriptions()
	subs := make([]*entity.Subscription, 0, len(ids))
	for _, id := range ids {
		sub, err := subscriptions.GetByID(ctx, fmt.Sprint(id))
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
