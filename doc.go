// SPDX-License-Identifier: MIT

// Package latentfa reduces survey measurements to latent dimensions with
// maximum-likelihood factor analysis and relates each dimension to a
// mental-health composite.
//
// The work is split into small library packages that can be used on their own:
//
//	matrix:    dense storage, column statistics, z-scoring, NaN-aware row means
//	table:     subject-indexed tables, CSV I/O, column selection, composite, alignment
//	factor:    Gaussian factor model fitted by EM, posterior-mean scores
//	selection: sweep k = 1..maxK and pick the minimum information criterion
//	report:    top loadings, Pearson r with the covariate, Bonferroni correction
//	render:    text, JSON and YAML output, criterion-versus-k plot
//	synth:     deterministic synthetic data with a known factor structure
//	pipeline:  the end-to-end analysis driven by an explicit Config
//
// and one command, cmd/latentfa, wiring them to configuration files,
// environment variables and flags.
//
// Typical flow:
//
//	health ──Select(scales)──Composite──┐
//	                                    ├─Align─Standardize─Select k─Report
//	behavioral ──SelectGlob(*_survey*)──┘
//
// Loadings are unrotated: their sign and, between dimensions of similar
// strength, their orientation are not identified by the data.
//
//	go install github.com/katalvlaran/latentfa/cmd/latentfa@latest
package latentfa
