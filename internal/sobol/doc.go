// Package sobol implements variance-based global sensitivity analysis
// with the Saltelli sampling design.
//
// Two independent base ensembles A and B are cross-combined into a
// design of n*(p+2) rows ([Build]); the model is evaluated once per
// row, and the aligned output vector is decomposed into per-parameter
// first-order and total-effect indices ([Estimate]), optionally with
// bootstrap percentile confidence bounds ([EstimateWithBootstrap]).
//
// First-order S_i is the fraction of output variance explained by
// parameter i alone; total-effect T_i includes all its interactions.
// Both estimators can go slightly negative from finite-sample noise.
package sobol
