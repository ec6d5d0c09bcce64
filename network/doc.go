// Package network models the electrical topology consumed by the state
// estimator: N buses numbered 1..N and a fixed universe of candidate
// branches, each carrying a series admittance g + j·b.
//
// Overview:
//
//   - Buses are plain integers in [1, N]. There is no bus object; a bus only
//     exists as an index into the voltage blocks of the state vector.
//   - Candidate branches are enumerated in insertion order. That enumeration is
//     the canonical branch order used by every consumer (Jacobian status
//     columns, operational constraint rows, mismatch entries, reports).
//   - Admittance is stored once per branch, so the values seen from (i,j) and
//     from (j,i) are identical by construction. FromAdmittanceMatrices ingests
//     dense conductance/susceptance matrices and rejects asymmetric input.
//
// A candidate branch is not a closed branch. Whether it is connected is a
// continuous state variable estimated by the solver; the network only says
// that a physical line could exist between two buses.
//
// Errors (sentinel):
//
//   - ErrTooFewBuses           N < 1.
//   - ErrUnknownBus            a bus outside [1, N] was referenced.
//   - ErrSelfLoop              a branch from a bus to itself.
//   - ErrDuplicateBranch       the pair (or its reverse) is already a branch.
//   - ErrInvalidAdmittance     NaN or ±Inf conductance/susceptance.
//   - ErrAsymmetricAdmittance  G[i][j] != G[j][i] or B[i][j] != B[j][i].
//   - ErrUnknownBranch         no candidate branch between the given buses.
//   - ErrIsolatedBus           a bus without any candidate branch.
//   - ErrBadBranchID           a branch id that is not "<from>_<to>".
//   - ErrDimensionMismatch     admittance matrices of different or non-square shape.
//
// Thread safety:
//
//	Mutations and reads are guarded by a sync.RWMutex. Accessors return copies,
//	so a Network may be shared read-only by concurrent estimation runs.
package network
