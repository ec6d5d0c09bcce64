// SPDX-License-Identifier: MIT

package measurement

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/hachtel/network"
)

// Block names a segment of the state vector.
type Block uint8

const (
	// BlockVRe holds the real voltage parts, indexed by bus (1-based).
	BlockVRe Block = iota
	// BlockVIm holds the imaginary voltage parts, indexed by bus (1-based).
	BlockVIm
	// BlockStatus holds branch statuses, indexed by canonical branch index.
	BlockStatus
)

// String returns "VRe", "VIm" or "B".
func (b Block) String() string {
	switch b {
	case BlockVRe:
		return "VRe"
	case BlockVIm:
		return "VIm"
	case BlockStatus:
		return "B"
	default:
		return "Block(" + strconv.Itoa(int(b)) + ")"
	}
}

// Var identifies one state variable.
type Var struct {
	Block Block
	Index int
}

// Partial is one structurally nonzero entry of a Jacobian row.
type Partial struct {
	Var   Var
	Value float64
}

// Gradient returns the partial derivatives of Predict(net, st, m) with respect
// to every state variable the prediction depends on. Variables absent from
// the result have a zero partial. Each variable appears at most once, and the
// order is deterministic: own-bus voltages first, then neighbours and
// statuses in canonical branch order.
//
// Errors: as Predict.
func Gradient(net *network.Network, st State, m Measurement) ([]Partial, error) {
	if net == nil {
		return nil, ErrNilNetwork
	}
	if st == nil {
		return nil, ErrNilState
	}

	switch m.Kind {
	case V2:
		if !net.HasBus(m.Bus) {
			return nil, fmt.Errorf("Gradient(%s): %w", m, network.ErrUnknownBus)
		}
		v := voltageAt(st, m.Bus)

		return []Partial{
			{Var: Var{BlockVRe, m.Bus}, Value: 2 * v.Re},
			{Var: Var{BlockVIm, m.Bus}, Value: 2 * v.Im},
		}, nil

	case P, Q:
		return injectionGradient(net, st, m)

	case Pf, Qf:
		idx, g, b, err := flowBranch(net, m)
		if err != nil {
			return nil, fmt.Errorf("Gradient: %w", err)
		}
		s := st.Status(idx)
		t, _ := BranchTerm(m.Kind, g, b, voltageAt(st, m.Bus), voltageAt(st, m.To))

		return []Partial{
			{Var: Var{BlockVRe, m.Bus}, Value: s * t.DReL},
			{Var: Var{BlockVIm, m.Bus}, Value: s * t.DImL},
			{Var: Var{BlockVRe, m.To}, Value: s * t.DReK},
			{Var: Var{BlockVIm, m.To}, Value: s * t.DImK},
			{Var: Var{BlockStatus, idx}, Value: t.Value},
		}, nil

	default:
		return nil, fmt.Errorf("Gradient(%v): %w", m.Kind, ErrUnknownKind)
	}
}

// injectionGradient differentiates Σ_k s_e·bracket(l,k) term by term. The
// own-bus partials accumulate over all neighbours; each neighbour and each
// incident branch contributes exactly one entry.
func injectionGradient(net *network.Network, st State, m Measurement) ([]Partial, error) {
	nbs, err := net.Neighbors(m.Bus)
	if err != nil {
		return nil, fmt.Errorf("Gradient(%s): %w", m, err)
	}

	out := make([]Partial, 2, 2+3*len(nbs))
	vl := voltageAt(st, m.Bus)
	var dReL, dImL float64
	for _, nb := range nbs {
		s := st.Status(nb.Branch)
		t, _ := BranchTerm(m.Kind, nb.G, nb.B, vl, voltageAt(st, nb.Bus))
		dReL += s * t.DReL
		dImL += s * t.DImL
		out = append(out,
			Partial{Var: Var{BlockVRe, nb.Bus}, Value: s * t.DReK},
			Partial{Var: Var{BlockVIm, nb.Bus}, Value: s * t.DImK},
			Partial{Var: Var{BlockStatus, nb.Branch}, Value: t.Value},
		)
	}
	out[0] = Partial{Var: Var{BlockVRe, m.Bus}, Value: dReL}
	out[1] = Partial{Var: Var{BlockVIm, m.Bus}, Value: dImL}

	return out, nil
}
