// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric container and the column statistics
// used to prepare observation tables for factor analysis.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     explicit numeric policy (finite-only by default; raw ingestion tables may
//     opt out to carry NaN as "missing").
//   - Column statistics: CenterColumns, ColumnStds, StandardizeColumns
//     (z-scoring) and RowNanMeans (per-row mean that skips missing cells).
//   - AllClose for tolerance-based comparisons and ToGonum/FromGonum bridges to
//     gonum.org/v1/gonum/mat, which carries the heavy linear algebra.
//
// Standard scores use the population convention (divide by N), which is the
// unit-variance convention assumed by the factor package (S = XᵀX/N).
//
// See the examples in this package for usage patterns.
package matrix
