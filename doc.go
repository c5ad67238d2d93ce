/*
Package pychargify is a Go client for the Chargify subscription-billing
API. It exchanges XML documents over HTTPS using per-tenant basic-auth
credentials and exposes typed access to customers, products, subscriptions,
credit cards and postback notifications.

# Package Structure

The library is organized into the following packages:

	github.com/getyouridx/pychargify/pkg/chargify  - Entry-point client and resource façades
	github.com/getyouridx/pychargify/pkg/entity    - Resource model and schema registry
	github.com/getyouridx/pychargify/pkg/codec     - Object/XML marshaling engine
	github.com/getyouridx/pychargify/pkg/transport - Authenticated HTTPS transport

# Quick Start

	import (
	    "context"

	    "github.com/getyouridx/pychargify/pkg/chargify"
	    "github.com/getyouridx/pychargify/pkg/entity"
	)

	client := chargify.New("api-key", "acme")

	// Look up a customer and their subscriptions.
	customer, err := client.Customers().GetByReference(ctx, "ref-1042")
	subs, err := client.Subscriptions().ListByCustomer(ctx, customer.ID)

	// Create a customer. The save protocol decides create-vs-update by
	// identifier presence and reports whether the write was confirmed.
	ok, saved, err := client.Customers().Save(ctx, &entity.Customer{
	    FirstName: "Ada",
	    LastName:  "Lovelace",
	    Email:     "ada@example.com",
	})

	// Record metered usage against a subscription component.
	usages, err := client.Subscriptions().RecordUsage(ctx, subs[0].ID, 42, 5, "overage")

# Error Handling

Transport failures map one-to-one onto HTTP statuses: ErrUnauthorized (401),
ErrForbidden (403), ErrNotFound (404), ErrUnprocessableEntity (422) and
ErrServerError (405, 500), all matchable with errors.Is. Lookups whose
payload contains no matching element return nil rather than an error, which
keeps "absent from the document" distinct from a transport-level not-found.
There are no retries; transient network failures propagate to the caller.

# Save Confirmation

After a create or update the library decodes the response entity and asks a
SavePolicy whether the write is confirmed. The default policy compares the
response's modification timestamp with the calendar date the save began,
matching the upstream API's behavior; supply your own policy with
chargify.WithSavePolicy if you need something stricter.
*/
package pychargify
