// SPDX-License-Identifier: MIT

package measurement

import "errors"

var (
	// ErrUnknownKind indicates a measurement kind outside {P, Q, V2, Pf, Qf}.
	ErrUnknownKind = errors.New("measurement: unknown kind")

	// ErrBadVariance indicates a negative, NaN or infinite variance.
	ErrBadVariance = errors.New("measurement: variance must be finite and >= 0")

	// ErrNonFiniteValue indicates a NaN or ±Inf observed value.
	ErrNonFiniteValue = errors.New("measurement: value must be finite")

	// ErrBadLocation indicates a bus kind carrying a far bus, or a flow kind without one.
	ErrBadLocation = errors.New("measurement: location does not match kind")

	// ErrNilNetwork indicates a nil *network.Network argument.
	ErrNilNetwork = errors.New("measurement: network is nil")

	// ErrNilState indicates a nil State argument.
	ErrNilState = errors.New("measurement: state is nil")
)
