// Package debtledger computes the day-by-day history of a monetary debt:
// what is owed, what interest it carries, and how payments settle it over
// time. It is designed to be local-first and auditable, so every figure in a
// report can be traced back to a document entry or a published rate.
//
// The core functionalities include:
//   - Ledger Documents: a debt is a plain document of obligations (fixed
//     principals and accruing interest or fee clauses), payments, report
//     checkpoints and manual exchange-rate overrides.
//   - Interest Accrual: contractual rates per annum, per month or per day
//     under the usual day-count conventions, plus the Czech statutory
//     default-interest and late-fee formulas driven by central-bank rates.
//   - Payment Distribution: payments settle obligations in a declared
//     priority order, converting currencies where needed; overpayments are
//     carried forward and absorbed by obligations created later.
//   - Data Persistence: documents travel as versioned XML, including the
//     migration of documents written by the legacy single-debt format.
//
// This package serves as the foundational logic for the `dlg` command-line
// tool; external rate data comes from the cnb subpackage.
package debtledger
