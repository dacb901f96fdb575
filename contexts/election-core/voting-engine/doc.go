// Package votingengine implements the election ledger inside the
// election-core context.
//
// The module owns election configuration and finalization, per-cycle voter
// eligibility, proxy delegation with proof-based authorization, vote casting
// (direct and by proxy) with tally accumulation, self-custodied balance
// bookkeeping, and the engine's own append-only audit sequence. The host
// environment sequences calls and supplies the caller principal and the
// current block height; vote fees and balance movements are recorded as
// transfer intents for the external ledger to settle.
package votingengine
