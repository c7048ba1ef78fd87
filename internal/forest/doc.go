// Package forest provides carbon accumulation models for a single
// forest stand.
//
// Each model implements the [dynamo.System] interface with a
// one-dimensional state, the stand carbon stock in kg:
//
//   - [Growth]: two-regime model, exponential until canopy closure
//     then saturating toward carrying capacity
//   - [Logistic]: classic logistic growth, for comparison runs
//
// Parameter sets are plain values ([Params]); a model binds one set
// for its lifetime and never mutates it.
package forest
