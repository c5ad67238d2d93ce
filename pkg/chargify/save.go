package chargify

import (
	"context"
	"time"

	"github.com/getyouridx/pychargify/pkg/codec"
	"github.com/getyouridx/pychargify/pkg/entity"
)

// SavePolicy decides whether a decoded save response confirms the write.
// saved is the entity decoded from the response, began the instant the save
// protocol started.
type SavePolicy func(saved entity.Resource, began time.Time) bool

// SameCalendarDay is the default SavePolicy: the write is confirmed when
// the response's modification timestamp falls on the calendar date the save
// began (local time). This only approximates write confirmation near
// midnight or across timezones, which is why the policy is replaceable.
func SameCalendarDay(saved entity.Resource, began time.Time) bool {
	updated := saved.LastUpdated()
	if updated.IsZero() {
		return false
	}
	updated = updated.Local()
	return updated.Day() == began.Day() &&
		updated.Month() == began.Month() &&
		updated.Year() == began.Year()
}

// save creates or updates r: an entity with an identifier PUTs to its
// id-form path, one without POSTs to the collection. The response decodes
// under nodeName and is returned regardless of whether the policy reports
// the write confirmed. Transport errors propagate unchanged.
func (c *Client) save(ctx context.Context, r entity.Resource, collection, nodeName string) (bool, entity.Resource, error) {
	body, err := codec.EncodeDocument(r)
	if err != nil {
		return false, nil, err
	}

	began := time.Now()
	var data []byte
	if id := r.ResourceID(); id != "" {
		data, err = c.transport.Put(ctx, "/"+collection+"/"+id+".xml", body)
	} else {
		data, err = c.transport.Post(ctx, "/"+collection+".xml", body)
	}
	if err != nil {
		return false, nil, err
	}

	saved, err := codec.DecodeOne(data, r.Kind(), nodeName, c.creds)
	if err != nil {
		return false, nil, err
	}
	if saved == nil {
		return false, nil, nil
	}
	return c.savePolicy(saved, began), saved, nil
}
