// Package diagnostic provides structured errors, warnings and infos produced
// while converting a tabular document, plus the hierarchical Log sink the
// converter writes its progress to.
//
// Key capabilities:
//   - Error/warning collection that never stops at the first problem
//   - Stable diagnostic codes and source positions
//   - "Did you mean" suggestions for unknown schema names
//   - A branchable log tree mirrored to log/slog
package diagnostic
