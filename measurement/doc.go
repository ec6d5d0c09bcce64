// Package measurement defines the field measurements consumed by the state
// estimator and the closed-form AC model that predicts them.
//
// Kinds (tagged, dispatched by switch, never by name lookup):
//
//	P   active power injected at a bus          Σ_k s_e·[g(a²+c²) − g(ad+ce) + b(ae−cd)]
//	Q   reactive power injected at a bus        Σ_k s_e·[−b(a²+c²) + b(ad+ce) + g(ae−cd)]
//	V2  squared voltage magnitude at a bus      a² + c²
//	Pf  active power leaving bus l toward k     s_e·[P bracket of branch e=(l,k)]
//	Qf  reactive power leaving bus l toward k   s_e·[Q bracket of branch e=(l,k)]
//
// where a+jc is the voltage of the measured bus l, d+je the voltage of the
// far bus k, g+jb the branch admittance and s_e the continuous status of the
// branch. Injection sums run over candidate branches incident to l in
// canonical branch order; a pair with no candidate branch contributes nothing.
//
// Every prediction is linear in each branch status, so the partial derivative
// with respect to s_e is the bracket itself. Gradient returns only the
// structurally nonzero partials as a sparse list of (variable, value) pairs.
//
// A measurement with zero variance is exact: the estimator treats it as an
// equality row of the augmented system rather than a weighted residual.
package measurement
