// Package codec converts Chargify entities to and from XML documents.
//
// Decoding locates every element with a given tag anywhere in a response
// document and builds one entity per match, recursing into child elements
// that the entity's schema declares as nested types and coercing scalars
// (elements carrying type="datetime" parse as ISO 8601 and convert to local
// time). Encoding walks an entity's declared fields and produces a properly
// nested, escaped element tree. Field order in encoded documents follows
// struct declaration order but is not part of the contract.
package codec
