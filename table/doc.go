// SPDX-License-Identifier: MIT

// Package table provides subject-indexed, named-column numeric tables and the
// preparation steps that turn raw survey exports into an observation matrix.
//
// A Table pairs a row index of subject identifiers with named columns backed by
// a matrix.Dense. Raw tables may hold NaN for missing answers; the preparation
// steps are:
//
//   - ReadCSV / Loader: parse a header row plus one row per subject, the first
//     column being the subject identifier. NA tokens become NaN.
//   - Select / SelectGlob: keep a named subset of columns ("*_survey*" picks every
//     survey item).
//   - Composite: collapse several columns into their per-subject mean, skipping
//     missing cells.
//   - Align: keep only subjects that are complete in both tables (set
//     intersection) and reindex both identically.
//   - Standardize: z-score every column with the population convention.
//   - ConfirmAligned: verify two tables share the same subjects in the same order.
//
// Tables are immutable: every step returns a new Table.
package table
