package chargify

import (
	"context"

	"github.com/getyouridx/pychargify/pkg/codec"
	"github.com/getyouridx/pychargify/pkg/entity"
)

// ProductService exposes the product catalog.
type ProductService struct {
	client *Client
}

// List returns every product for the tenant.
func (s *ProductService) List(ctx context.Context) ([]*entity.Product, error) {
	data, err := s.client.transport.Get(ctx, "/products.xml")
	if err != nil {
		return nil, err
	}
	resources, err := codec.DecodeMany(data, entity.KindProduct, "product", s.client.creds)
	if err != nil {
		return nil, err
	}
	return collect[*entity.Product](resources), nil
}

// GetByID fetches one product by its identifier.
func (s *ProductService) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	data, err := s.client.transport.Get(ctx, "/products/"+id+".xml")
	if err != nil {
		return nil, err
	}
	return decodeProduct(data, s.client.creds)
}

// GetByHandle fetches one product by its API handle.
func (s *ProductService) GetByHandle(ctx context.Context, handle string) (*entity.Product, error) {
	data, err := s.client.transport.Get(ctx, "/products/handle/"+handle+".xml")
	if err != nil {
		return nil, err
	}
	return decodeProduct(data, s.client.creds)
}

// Save creates or updates the product depending on identifier presence.
func (s *ProductService) Save(ctx context.Context, product *entity.Product) (bool, *entity.Product, error) {
	ok, saved, err := s.client.save(ctx, product, "products", "product")
	if err != nil || saved == nil {
		return false, nil, err
	}
	return ok, saved.(*entity.Product), nil
}

func decodeProduct(data []byte, creds entity.Credentials) (*entity.Product, error) {
	r, err := codec.DecodeOne(data, entity.KindProduct, "product", creds)
	if err != nil || r == nil {
		return nil, err
	}
	return r.(*entity.Product), nil
}
