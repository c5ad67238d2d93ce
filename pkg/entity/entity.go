package entity

import (
	"fmt"
	"time"
)

// DefaultBaseHost is the suffix appended to the tenant sub-domain to form
// the API host.
const DefaultBaseHost = ".chargify.com"

// Credentials identifies the tenant an entity belongs to. Credentials are
// never serialized and never take part in equality; they propagate unchanged
// from an entity to every nested entity constructed during decoding.
type Credentials struct {
	APIKey    string
	Subdomain string

	// BaseHost replaces DefaultBaseHost when set, so entities decoded by a
	// client pointed at another host derive URLs against that host too.
	BaseHost string
}

// Host returns the request host for the tenant, e.g. "acme.chargify.com".
func (c Credentials) Host() string {
	base := c.BaseHost
	if base == "" {
		base = DefaultBaseHost
	}
	return c.Subdomain + base
}

// Kind is a closed type tag identifying a resource type in the registry.
type Kind string

const (
	KindCustomer      Kind = "customer"
	KindProduct       Kind = "product"
	KindProductFamily Kind = "product_family"
	KindSubscription  Kind = "subscription"
	KindCreditCard    Kind = "credit_card"
)

// Resource is implemented by every entity type. It exposes the schema
// metadata the codec needs and the credential plumbing shared by all
// resources.
type Resource interface {
	// Kind returns the registry tag for the concrete type.
	Kind() Kind

	// NodeName returns the XML element name used when this entity is the
	// top-level node of a document, honoring any override set with
	// SetNodeName.
	NodeName() string
	SetNodeName(name string)

	// AttributeTypes maps child element names to the Kind of the nested
	// entity they decode into. Child elements not listed decode as scalars.
	AttributeTypes() map[string]Kind

	Credentials() Credentials
	SetCredentials(creds Credentials)

	// ResourceID returns the remote identifier, empty until the entity has
	// been persisted. Its presence selects update over create when saving.
	ResourceID() string

	// LastUpdated returns the server-side modification timestamp used by
	// the save protocol's success check (modified_at for customers,
	// updated_at elsewhere). Zero when the type carries no such timestamp.
	LastUpdated() time.Time
}

// Meta carries the non-serialized state shared by all resources. It is
// embedded in every entity type; its fields are unexported so the codec's
// field walk never sees them.
type Meta struct {
	creds    Credentials
	nodeName string
}

func (m *Meta) Credentials() Credentials { return m.creds }
func (m *Meta) SetCredentials(c Credentials) { m.creds = c }

// SetNodeName overrides the default XML node name. An empty name keeps the
// type's default.
func (m *Meta) SetNodeName(name string) {
	m.nodeName = name
}

func (m *Meta) nodeOr(def string) string {
	if m.nodeName != "" {
		return m.nodeName
	}
	return def
}

// factories is the closed registry mapping a Kind to its constructor,
// resolved at package initialization. This replaces dynamic lookup of type
// names with statically-checkable dispatch.
var factories = map[Kind]func() Resource{
	KindCustomer:      func() Resource { return &Customer{} },
	KindProduct:       func() Resource { return &Product{} },
	KindProductFamily: func() Resource { return &ProductFamily{} },
	KindSubscription:  func() Resource { return &Subscription{} },
	KindCreditCard:    func() Resource { return &CreditCard{} },
}

// New constructs a fresh instance of the given kind carrying the given
// credentials. Scalar fields hold their declared zero values; nested fields
// are unset.
func New(kind Kind, creds Credentials) (Resource, error) {
	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("entity: unknown kind %q", kind)
	}
	r := factory()
	r.SetCredentials(creds)
	return r, nil
}
