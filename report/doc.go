// SPDX-License-Identifier: MIT

// Package report summarises a fitted factor model against an external
// covariate: for every latent dimension it lists the variables with the
// largest absolute loadings and the Pearson correlation between the
// dimension's scores and the covariate, with a two-sided p-value and its
// Bonferroni adjustment over the number of dimensions.
//
// Statistics come from gonum.org/v1/gonum/stat (correlation) and
// gonum.org/v1/gonum/stat/distuv (Student's t distribution).
package report
