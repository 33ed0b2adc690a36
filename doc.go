// Package balance normalizes the account balances published by financial
// providers into a single canonical record.
//
// Providers publish balances in many shapes: fields get renamed across API
// versions, lists get wrapped in envelopes, amounts come as numbers, strings
// with locale separators or nested objects. The package reads them all:
//   - Decimal Coercion: Coerce turns any raw amount into an exact decimal.
//   - Field Aliases: Resolve and its typed variants find a field under any of
//     its known names, searching nested objects level by level.
//   - Schema Cascade: Cascade decodes a response by trying the documented
//     layout first, then wrapped lists, then a search of the whole document.
//   - Records: Normalize projects provider entries into Records, deduplicated
//     by provider and identifier.
//   - Refresh: fetches several providers in parallel and keeps the balances
//     of the ones that succeeded.
//
// Provider specific projections live in the ledger and wallet packages. This
// package serves as the foundational logic for the `balances` command-line
// tool.
package balance
