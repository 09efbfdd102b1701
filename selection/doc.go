// SPDX-License-Identifier: MIT

// Package selection chooses the number of latent factors for an observation
// matrix by fitting every candidate k = 1..maxK and minimising an
// information criterion.
//
// The default criterion, SimplifiedAIC, is 2k − 2·(mean per-subject
// log-likelihood). It penalises only the factor count and uses the average,
// not the total, likelihood; it is kept as the default for continuity with
// earlier analyses. ParameterAIC and BIC use the free-parameter count of the
// factor model, kP + P − k(k−1)/2, and the total log-likelihood.
//
// Ties are resolved toward the smaller k. Candidates may be fitted
// concurrently (WithWorkers); the result never depends on the worker count.
package selection
