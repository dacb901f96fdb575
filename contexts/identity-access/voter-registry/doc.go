// Package voterregistry implements the voter identity registry inside the
// identity-access context.
//
// The module owns voter enrollment (sequential voter ids, principal
// indexing, enrollment proof storage), voter status administration, and the
// registry's own append-only audit sequence. Registration charges a fee as a
// transfer intent; settlement happens in the host ledger. Caller identity and
// logical time (block height) are supplied by the host environment on every
// operation.
package voterregistry
