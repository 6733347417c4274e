// Package match provides name normalization, Levenshtein distance and the
// ranking used to suggest known schema names for misspelled ones.
//
// Key functions:
//   - NormalizeName: folds case and strips separators
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names by similarity to an unknown one
package match
