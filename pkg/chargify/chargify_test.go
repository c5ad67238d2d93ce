package chargify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getyouridx/pychargify/pkg/codec"
	"github.com/getyouridx/pychargify/pkg/entity"
	"github.com/getyouridx/pychargify/pkg/transport"
)

// recordedRequest captures what the fake API saw.
type recordedRequest struct {
	method string
	path   string
	query  string
	body   string
}

func newTestClient(t *testing.T, respond func(w http.ResponseWriter, r *http.Request), opts ...Option) (*Client, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			body:   string(body),
		})
		respond(w, r)
	}))
	t.Cleanup(srv.Close)

	opts = append([]Option{WithBaseURL(srv.URL)}, opts...)
	return New("test-key", "acme", opts...), &seen
}

func customerResponse(modifiedAt time.Time) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<customer>
  <id>1042</id>
  <first_name>Ada</first_name>
  <modified_at type="datetime">%s</modified_at>
</customer>`, modifiedAt.Format(time.RFC3339))
}

func TestCustomerSave_CreatePostsToCollection(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, customerResponse(time.Now()))
	})

	ok, saved, err := client.Customers().Save(context.Background(), &entity.Customer{FirstName: "Ada"})
	require.NoError(t, err)
	assert.True(t, ok, "same-day modified_at confirms the write")
	require.NotNil(t, saved)
	assert.Equal(t, "1042", saved.ID)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/customers.xml", req.path)
	assert.Contains(t, req.body, "<first_name>Ada</first_name>")
	assert.NotContains(t, req.body, "<id>", "identifier travels in the path, not the body")
}

func TestCustomerSave_UpdatePutsToIDPath(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, customerResponse(time.Now()))
	})

	ok, saved, err := client.Customers().Save(context.Background(), &entity.Customer{ID: "1042", FirstName: "Ada"})
	require.NoError(t, err)
	assert.True(t, ok)
	require.NotNil(t, saved)

	req := (*seen)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/customers/1042.xml", req.path)
}

func TestSave_StaleTimestampReportsUnconfirmed(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, customerResponse(yesterday))
	})

	ok, saved, err := client.Customers().Save(context.Background(), &entity.Customer{FirstName: "Ada"})
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotNil(t, saved, "the decoded entity is returned even when unconfirmed")
	assert.Equal(t, "1042", saved.ID)
}

func TestSave_PolicyIsReplaceable(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, customerResponse(yesterday))
	}, WithSavePolicy(func(saved entity.Resource, began time.Time) bool {
		return saved.ResourceID() != ""
	}))

	ok, _, err := client.Customers().Save(context.Background(), &entity.Customer{FirstName: "Ada"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSave_TransportErrorPropagates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	_, _, err := client.Customers().Save(context.Background(), &entity.Customer{FirstName: "Ada"})
	require.ErrorIs(t, err, transport.ErrUnprocessableEntity)
}

func TestCustomerGetByReference(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, customerResponse(time.Now()))
	})

	customer, err := client.Customers().GetByReference(context.Background(), "ref 42")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Ada", customer.FirstName)

	req := (*seen)[0]
	assert.Equal(t, "/customers/lookup.xml", req.path)
	assert.Equal(t, "reference=ref+42", req.query)
}

func TestCustomerGetByID_AbsentPayloadYieldsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?><errors/>`)
	})

	customer, err := client.Customers().GetByID(context.Background(), "9")
	require.NoError(t, err)
	assert.Nil(t, customer)
}

func TestProductGetByHandle(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<product><id>p-1</id><handle>gold</handle><price_in_cents>1999</price_in_cents></product>`)
	})

	product, err := client.Products().GetByHandle(context.Background(), "gold")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "$19.99", product.FormattedPrice())
	assert.Equal(t, "/products/handle/gold.xml", (*seen)[0].path)
}

func TestSubscriptionList_ByCustomerPath(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<subscriptions type="array">
		  <subscription><id>1</id></subscription>
		  <subscription><id>2</id></subscription>
		</subscriptions>`)
	})

	subs, err := client.Subscriptions().ListByCustomer(context.Background(), "1042")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "1", subs[0].ID)
	assert.Equal(t, "2", subs[1].ID)
	assert.Equal(t, "/customers/1042/subscriptions.xml", (*seen)[0].path)
}

func TestSubscriptionGetByID_RequiresExactlyOne(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<subscriptions>
		  <subscription><id>1</id></subscription>
		  <subscription><id>2</id></subscription>
		</subscriptions>`)
	})
	_, err := client.Subscriptions().GetByID(context.Background(), "1")
	require.ErrorIs(t, err, codec.ErrMultipleOrNoResults)

	client, _ = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<subscriptions/>`)
	})
	_, err = client.Subscriptions().GetByID(context.Background(), "1")
	require.ErrorIs(t, err, codec.ErrMultipleOrNoResults)
}

func TestSubscriptionStateTransitions(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	require.NoError(t, client.Subscriptions().ResetBalance(ctx, "9"))
	require.NoError(t, client.Subscriptions().Reactivate(ctx, "9"))

	require.Len(t, *seen, 2)
	assert.Equal(t, http.MethodPut, (*seen)[0].method)
	assert.Equal(t, "/subscriptions/9/reset_balance.xml", (*seen)[0].path)
	assert.Empty(t, (*seen)[0].body)
	assert.Equal(t, http.MethodPut, (*seen)[1].method)
	assert.Equal(t, "/subscriptions/9/reactivate.xml", (*seen)[1].path)
}

func TestSubscriptionUpgrade(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<subscription><id>9</id><product_handle>platinum</product_handle></subscription>`)
	})

	sub, err := client.Subscriptions().Upgrade(context.Background(), "9", "platinum")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "platinum", sub.ProductHandle)

	req := (*seen)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/subscriptions/9.xml", req.path)
	assert.Contains(t, req.body, "<product_handle>platinum</product_handle>")
}

func TestSubscriptionUnsubscribe(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	err := client.Subscriptions().Unsubscribe(context.Background(), "9", "too expensive")
	require.NoError(t, err)

	req := (*seen)[0]
	assert.Equal(t, http.MethodDelete, req.method)
	assert.Equal(t, "/subscriptions/9.xml", req.path)
	assert.Contains(t, req.body, "<cancellation_message>too expensive</cancellation_message>")
}

func TestRecordUsage(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<usages type="array">
		  <usage><id>u-1</id><memo>overage</memo><quantity>5</quantity></usage>
		</usages>`)
	})

	usages, err := client.Subscriptions().RecordUsage(context.Background(), "abc", 42, 5, "overage")
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, entity.Usage{ID: "u-1", Quantity: 5, Memo: "overage"}, usages[0])

	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/subscriptions/abc/components/42/usages.xml", req.path)
	assert.Contains(t, req.body, "<quantity>5</quantity>")
	assert.Contains(t, req.body, "<memo>overage</memo>")
}

func TestCreditCardSave(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<subscription><id>9</id><state>active</state></subscription>`)
	})

	card := &entity.CreditCard{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		FullNumber:      "4111111111111111",
		ExpirationMonth: 12,
		ExpirationYear:  2030,
		CVV:             "123",
		Zip:             "02134",
	}
	sub, err := client.CreditCards().Save(context.Background(), "9", card)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "active", sub.State)

	req := (*seen)[0]
	assert.Equal(t, http.MethodPut, req.method)
	assert.Equal(t, "/subscriptions/9.xml", req.path)
	assert.Contains(t, req.body, "<credit_card_attributes>")
	assert.Contains(t, req.body, "<full_number>4111111111111111</full_number>")
	assert.Contains(t, req.body, "<expiration_month>12</expiration_month>")
	assert.NotContains(t, req.body, "masked_card_number", "only payment fields are sent")
}

func TestPostBackProcess(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/subscriptions/101.xml":
			fmt.Fprint(w, `<subscription><id>101</id></subscription>`)
		case "/subscriptions/202.xml":
			fmt.Fprint(w, `<subscription><id>202</id></subscription>`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	subs, err := client.PostBacks().Process(context.Background(), []byte(`[101, "202"]`))
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "101", subs[0].ID, "payload order is preserved")
	assert.Equal(t, "202", subs[1].ID)

	require.Len(t, *seen, 2)
	assert.Equal(t, "/subscriptions/101.xml", (*seen)[0].path)
	assert.Equal(t, "/subscriptions/202.xml", (*seen)[1].path)
}

func TestPostBackProcess_InvalidPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := client.PostBacks().Process(context.Background(), []byte(`{"not": "an array"}`))
	require.Error(t, err)
}

func TestDecodedEntitiesCarryClientCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<subscription><id>9</id><customer><id>1</id></customer></subscription>`)
	})

	sub, err := client.Subscriptions().GetByID(context.Background(), "9")
	require.NoError(t, err)

	want := entity.Credentials{APIKey: "test-key", Subdomain: "acme"}
	assert.Equal(t, want, sub.Credentials())
	require.NotNil(t, sub.Customer)
	assert.Equal(t, want, sub.Customer.Credentials())
}

func TestWithBaseHostReachesDecodedEntities(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<product><id>42</id><handle>gold</handle></product>`)
	}, WithBaseHost(".example.test"))

	p, err := client.Products().GetByID(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, ".example.test", p.Credentials().BaseHost)
	assert.Equal(t, "https://acme.example.test/h/42/subscriptions/new", p.PaymentPageUrl())
}
