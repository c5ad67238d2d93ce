package chargify

import (
	"context"
	"net/url"

	"github.com/getyouridx/pychargify/pkg/codec"
	"github.com/getyouridx/pychargify/pkg/entity"
)

// CustomerService exposes the customer resource.
type CustomerService struct {
	client *Client
}

// collect narrows a decoded resource slice to its concrete type.
func collect[T entity.Resource](resources []entity.Resource) []T {
	out := make([]T, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.(T))
	}
	return out
}

// List returns every customer for the tenant.
func (s *CustomerService) List(ctx context.Context) ([]*entity.Customer, error) {
	data, err := s.client.transport.Get(ctx, "/customers.xml")
	if err != nil {
		return nil, err
	}
	resources, err := codec.DecodeMany(data, entity.KindCustomer, "customer", s.client.creds)
	if err != nil {
		return nil, err
	}
	return collect[*entity.Customer](resources), nil
}

// GetByID fetches one customer by its identifier. A payload with no
// customer element yields (nil, nil).
func (s *CustomerService) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	data, err := s.client.transport.Get(ctx, "/customers/"+id+".xml")
	if err != nil {
		return nil, err
	}
	return decodeCustomer(data, s.client.creds)
}

// GetByReference fetches one customer by the caller-assigned reference.
func (s *CustomerService) GetByReference(ctx context.Context, reference string) (*entity.Customer, error) {
	data, err := s.client.transport.Get(ctx, "/customers/lookup.xml?reference="+url.QueryEscape(reference))
	if err != nil {
		return nil, err
	}
	return decodeCustomer(data, s.client.creds)
}

// Subscriptions lists the subscriptions held by a customer.
func (s *CustomerService) Subscriptions(ctx context.Context, customerID string) ([]*entity.Subscription, error) {
	return s.client.Subscriptions().ListByCustomer(ctx, customerID)
}

// Save creates the customer when it has no identifier yet, updates it
// otherwise. The boolean reports whether the configured SavePolicy
// confirmed the write; the decoded customer is returned either way.
func (s *CustomerService) Save(ctx context.Context, customer *entity.Customer) (bool, *entity.Customer, error) {
	ok, saved, err := s.client.save(ctx, customer, "customers", "customer")
	if err != nil || saved == nil {
		return false, nil, err
	}
	return ok, saved.(*entity.Customer), nil
}

func decodeCustomer(data []byte, creds entity.Credentials) (*entity.Customer, error) {
	r, err := codec.DecodeOne(data, entity.KindCustomer, "customer", creds)
	if err != nil || r == nil {
		return nil, err
	}
	return r.(*entity.Customer), nil
}
