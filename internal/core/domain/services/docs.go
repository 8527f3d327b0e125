// Package services provides domain services that work across the order
// projection and geographic values without belonging to either.
//
// The package includes:
//   - RoutePlanner: splits an order's remaining trip into driving legs and
//     folds resolved legs into a single route estimate
//
// Services here are pure: resolving a leg against a directions provider is
// left to the application layer, which calls Plan, resolves each Segment
// and hands the results back to Summarize.
package services
