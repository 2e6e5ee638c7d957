package search

import "errors"

// ErrLimitReached is returned by Run alongside its (valid, partially
// complete) Graph when the generation limit is hit before the frontier
// empties. It is not a hard failure: errors.Is lets a caller detect it
// and still use the graph, matching the original's "print a warning,
// stop" behavior.
var ErrLimitReached = errors.New("plotex: generation limit reached")

// DefaultGenerationLimit is L, the default cap on distinct maximal
// states a Run will discover before giving up.
const DefaultGenerationLimit = 10000
