package scenario

import "errors"

// ErrName is wrapped whenever a scenario declaration (state, action, or
// test) is registered under a name that's already taken, or references
// a name that was never registered.
var ErrName = errors.New("plotex: scenario name error")
