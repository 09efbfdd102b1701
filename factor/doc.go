// SPDX-License-Identifier: MIT

// Package factor fits maximum-likelihood factor analysis models.
//
// The model is x = Λᵀf + ε with f ~ N(0, I_k) and ε ~ N(0, Ψ), Ψ diagonal, so the
// implied covariance is Σ = ΛᵀΛ + Ψ (Λ is stored k×P, one row per factor).
//
// Fit runs the eigen fixed-point form of EM: at each step the covariance is
// whitened by the current noise variances, its top-k eigenpairs give the
// loadings in closed form, the exact Gaussian log-likelihood of those
// parameters is evaluated, and the noise variances are updated from the
// residual diagonal. Iteration stops when the likelihood gain drops below the
// tolerance or the iteration cap is reached; in both cases the returned
// loadings, noise variances and log-likelihood describe one and the same fit.
//
// Scores are posterior means of the factors given each row:
//
//	E[f | x] = (I + ΛΨ⁻¹Λᵀ)⁻¹ ΛΨ⁻¹ (x − μ)
//
// Loadings are identified only up to sign and rotation; Fit does not
// canonicalize them. Local optima are accepted.
//
// Linear algebra is delegated to gonum.org/v1/gonum/mat (EigenSym, Cholesky).
package factor
