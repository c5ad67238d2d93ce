// Package chargify is the entry point of the library: a per-tenant Client
// exposing typed façades over the Chargify API's customer, product,
// subscription, credit-card and postback resources. Façades forward to the
// transport and codec packages; the save protocol's create-or-update
// dispatch and its write-confirmation policy live here too.
package chargify
