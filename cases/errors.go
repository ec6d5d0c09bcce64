// SPDX-License-Identifier: MIT

package cases

import "errors"

var (
	// ErrTooFewBuses indicates a generator dimension below its minimum.
	ErrTooFewBuses = errors.New("cases: too few buses")

	// ErrBadNoise indicates a negative or non-finite noise amplitude.
	ErrBadNoise = errors.New("cases: noise amplitude must be finite and >= 0")

	// ErrSnapshotShape indicates a snapshot that does not match its network.
	ErrSnapshotShape = errors.New("cases: snapshot does not match network")

	// ErrUnknownCase indicates a case name not known to ByName.
	ErrUnknownCase = errors.New("cases: unknown case")
)
