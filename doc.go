// Package analysiolo computes portfolio-level financial metrics from an
// ordered ledger of buy/sell transactions and historical security prices.
//
// The core functionalities include:
//   - Transaction Sequencing: Inferring the ordering direction of an ingested
//     transaction batch, enforcing monotonic dates, and rejecting sequences
//     that would drive any symbol's running share count negative.
//   - Portfolio State: Folding a validated transaction journal into per-symbol
//     positions, each bound to a price-resolution capability, and valuing the
//     whole portfolio on any date.
//   - Derived Metrics: Per-symbol weighted-average cost basis (with min and
//     max paid price), and time-weighted rate of return (TWRR) composed
//     geometrically from sub-period growth factors bounded by cash flows.
//
// All monetary arithmetic is fixed-point decimal (shopspring/decimal),
// rounded half-up to six fractional digits, so repeated computations are
// reproducible bit-for-bit across runs.
//
// This package holds the foundational logic for the `analysiolo` command-line
// tool. Persistence (package store) and market data (package yahoo) live in
// their own packages and are consumed through narrow interfaces.
package analysiolo
