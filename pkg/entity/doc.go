// Package entity defines the Chargify resource model: typed records for
// customers, products, product families, subscriptions and credit cards,
// together with the static schema metadata the codec needs (XML node names
// and nested-type maps) and a closed factory registry keyed by Kind.
package entity
