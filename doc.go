// Package wealthos provides the planning engine behind a small family
// wealth-management tool: fixed target portfolios per member, funded by a
// monthly budget entered in the household's local currency.
//
// The core functionalities include:
//   - Allocation Planning: Turning a monthly budget into a concrete buy plan,
//     either by splitting it across the target weights (flat) or by funding
//     the most underweight positions first (rebalance). Plans never sell.
//   - Ledger Management: Recording executed purchases in an append-only
//     JSONL file, the single source of truth for what each member holds.
//   - Market Data: Fetching latest prices and exchange rates from Yahoo
//     Finance, degrading gracefully to partial plans and fallback rates when
//     a lookup fails.
//   - Portfolio Review: Valuing recorded holdings against current prices to
//     report unrealized gains per member.
//   - Projection: A simple compounding outlook of steady monthly investing
//     over a multi-year horizon.
//
// This package serves as the foundational logic for the `wos` command-line
// tool.
package wealthos
