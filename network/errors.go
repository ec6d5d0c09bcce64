// SPDX-License-Identifier: MIT

package network

import "errors"

// Sentinel errors for network construction and lookup.
var (
	// ErrTooFewBuses indicates a network with fewer than one bus was requested.
	ErrTooFewBuses = errors.New("network: at least one bus is required")

	// ErrUnknownBus indicates a bus number outside [1, N].
	ErrUnknownBus = errors.New("network: unknown bus")

	// ErrSelfLoop indicates a branch whose endpoints are the same bus.
	ErrSelfLoop = errors.New("network: branch endpoints must differ")

	// ErrDuplicateBranch indicates the bus pair (in either direction) is already a candidate branch.
	ErrDuplicateBranch = errors.New("network: duplicate branch")

	// ErrInvalidAdmittance indicates a NaN or ±Inf conductance or susceptance.
	ErrInvalidAdmittance = errors.New("network: admittance must be finite")

	// ErrAsymmetricAdmittance indicates admittance for (i,j) differs from (j,i).
	ErrAsymmetricAdmittance = errors.New("network: admittance is not symmetric")

	// ErrUnknownBranch indicates there is no candidate branch between two buses.
	ErrUnknownBranch = errors.New("network: unknown branch")

	// ErrIsolatedBus indicates a bus that no candidate branch touches.
	ErrIsolatedBus = errors.New("network: isolated bus")

	// ErrBadBranchID indicates a branch identifier not of the form "<from>_<to>".
	ErrBadBranchID = errors.New("network: malformed branch id")

	// ErrDimensionMismatch indicates admittance matrices with inconsistent shapes.
	ErrDimensionMismatch = errors.New("network: dimension mismatch")
)
