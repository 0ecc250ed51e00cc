// Package envelope computes Monte Carlo confidence envelopes for the two
// forward-search diagnostics used to flag outliers in contingency tables
// analyzed by correspondence analysis: the minimum Mahalanobis-type distance
// (MMD) and the explained inertia (INE).
//
// For each of nsimul simulated null-hypothesis tables the external
// diagnostic engine produces a per-step trajectory of both diagnostics; the
// per-step values are collected across simulations, sorted, and reduced to
// order-statistic envelopes at the requested quantile probabilities. The
// table sampler, the robust correspondence-analysis fitter and the forward
// search itself are external collaborators behind the Sampler, Fitter and
// Engine interfaces; this package only orchestrates them and reduces their
// output.
package envelope
