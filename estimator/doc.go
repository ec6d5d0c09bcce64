// Package estimator implements constrained weighted-least-squares state
// estimation by Hachtel's augmented-matrix method, estimating complex bus
// voltages together with continuous branch statuses, and ranks topology
// assumptions by the normalized Lagrange-multiplier test.
//
// State and constraints:
//
//	x = [VRe(1..N); VIm(1..N); B(0..E-1)]                     (2N+E columns)
//	rows = measurements (m) ; slack VRe, slack VIm (2) ; B[e] = assumed[e] (E)
//
// One Layout fixes this ordering for the Jacobian (BuildJacobian), the
// mismatch vector (ComputeMismatch) and the row covariance (Covariance).
// Structural and operational rows are exact (zero variance), except branches
// named by WithSuspectBranches, which get SuspectVariance.
//
// Iteration (Estimate):
//
//	INITIALIZED → ITERATING → CONVERGED | DIVERGED | SINGULAR
//
//	repeat: A = [[0,Hᵀ],[H,R]], b = [0;Δz], A·[δx;λ] = b, x ← x + δx
//	until iteration > 0 and ‖δx‖₂ < Tolerance, or MaxIterations solves.
//
// The flat start uses the topology assumption unmodified. Error injection for
// demonstrations lives in the cases package.
//
// Topology test: at convergence V is the trailing (m+2+E) block of A⁻¹ and
// the normalized multiplier of row i is |λ_i|/sqrt(V_ii). A large value on an
// operational row means the measurements contradict that branch's assumed
// status; RankAnomalies orders branches by it.
//
// Errors:
//
//	Input problems are returned before the first iteration and wrap
//	ErrDataInconsistency together with the precise sentinel
//	(network.ErrUnknownBranch, measurement.ErrBadVariance, ErrAssumption, ...).
//	Invalid options wrap ErrOptionViolation. Numerical outcomes are never
//	errors: they are Result.Status values, with Diagnosis set on SINGULAR.
//
// Concurrency:
//
//	Estimate is synchronous. Independent runs share nothing mutable, and
//	EvaluateHypotheses solves several topology assumptions concurrently with
//	errgroup. Callers must not mutate the network or measurements during a run.
//
// Logging:
//
//	WithLogger attaches a *zap.Logger (default no-op). Every run logs with a
//	run_id field: per-iteration step norms at Debug, terminal status at Info
//	or Warn.
package estimator
