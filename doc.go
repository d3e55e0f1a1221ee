// Package twr values an investment portfolio day by day and computes its
// time-weighted return, by replaying an immutable transaction ledger against
// historical market data.
//
// The core pieces are:
//   - Ledger: the chronological, immutable record of every transaction
//     (deposits, withdrawals, buys, sells, currency exchanges, dividends,
//     rebates), with weekend dates shifted to the next business day.
//   - Market: a fully resolved, read-only store of daily close prices,
//     foreign-exchange rates and split histories, with forward-fill over
//     non-trading days.
//   - Replay: the state machine that walks every business day of a range,
//     applies the day's transactions to running cash and position balances,
//     and emits one Snapshot per day in the reporting currency.
//   - Return calculators: compounding returns chained from daily returns,
//     and time-weighted returns that back external flows out of the
//     denominator so deposits never read as performance.
//
// A replay is deterministic and performs no I/O: all market data is loaded
// up front through a Provider, and any gap that would make a day unvaluable
// aborts the whole run instead of producing a partial series.
package twr
