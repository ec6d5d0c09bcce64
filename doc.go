// Package hachtel is a power-system state estimator that treats breaker
// status as an unknown and points at the branch whose reported topology the
// measurements contradict.
//
// 🚀 What is hachtel?
//
//	A weighted least-squares estimator in augmented (Hachtel) form:
//		• State: rectangular bus voltages plus one status per candidate branch
//		• Constraints: measurements (weighted), slack pinning and topology
//		  assumptions (exact equality rows)
//		• Solver: Gauss-Newton on [[0,Hᵀ],[H,R]]·[δx;λ] = [0;Δz] with pivoted LU
//		• Detection: normalized Lagrange multipliers |λᵢ|/sqrt(Vᵢᵢ) rank branches
//
// ✨ Why the augmented form?
//
//   - Exact rows stay exact: zero variance never becomes an infinite weight
//   - Status assumptions receive multipliers, so a wrong open/closed flag
//     surfaces as the largest normalized multiplier
//   - Suspect branches can be relaxed to estimate their status from data
//
// Packages:
//
//	network/     : buses, canonical candidate branches, admittances, islands
//	measurement/ : P, Q, V², Pf, Qf meters, model values and closed-form partials
//	matrix/      : saddle assembly, pivoted LU, inverse and rank on gonum
//	estimator/   : layout, Jacobian, mismatch, iteration, multiplier test, reports
//	cases/       : four-bus demonstration, ring/grid generators, synthesis, flips
//	cmd/hachtel/ : command-line driver
//
// Quick ASCII example (four-bus demonstration):
//
//	    1───2 (slack)
//	    │ ╱ │
//	    4───3
//
//	branch 3_4 is reported open but carries flow; the estimator ranks it first.
//
//	go install github.com/katalvlaran/hachtel/cmd/hachtel@latest
//	hachtel estimate
package hachtel
