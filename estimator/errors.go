// SPDX-License-Identifier: MIT

package estimator

import "errors"

var (
	// ErrDataInconsistency classifies malformed input detected before the first
	// iteration. The precise cause is wrapped alongside it.
	ErrDataInconsistency = errors.New("estimator: data inconsistency")

	// ErrOptionViolation indicates an invalid solver option.
	ErrOptionViolation = errors.New("estimator: invalid option")

	// ErrNilNetwork indicates a problem without a network.
	ErrNilNetwork = errors.New("estimator: network is nil")

	// ErrSlackBus indicates a slack bus outside the network or a non-finite slack voltage.
	ErrSlackBus = errors.New("estimator: invalid slack reference")

	// ErrAssumption indicates a topology assumption of the wrong length or
	// with a value outside [0, 1].
	ErrAssumption = errors.New("estimator: invalid topology assumption")

	// ErrStateLength indicates a state vector whose length is not 2N+E.
	ErrStateLength = errors.New("estimator: state vector length mismatch")

	// ErrNonFiniteState indicates a NaN or ±Inf initial state entry.
	ErrNonFiniteState = errors.New("estimator: state must be finite")

	// ErrNotConverged indicates a post-processing step that needs a converged run.
	ErrNotConverged = errors.New("estimator: run did not converge")

	// ErrNilResult indicates a nil *Result argument.
	ErrNilResult = errors.New("estimator: result is nil")
)
