// SPDX-License-Identifier: MIT

package measurement

import (
	"fmt"

	"github.com/katalvlaran/hachtel/network"
)

// State is the read-only view of an estimate the model evaluates against.
// Buses are 1-based; branches use the canonical network index.
type State interface {
	VRe(bus int) float64
	VIm(bus int) float64
	Status(branch int) float64
}

// Voltage is a complex bus voltage in rectangular form.
type Voltage struct {
	Re float64
	Im float64
}

// Term is the bracketed single-branch power expression seen from bus l toward
// bus k, together with its partials with respect to the four voltage parts.
type Term struct {
	Value float64

	DReL float64 // ∂/∂VRe[l]
	DImL float64 // ∂/∂VIm[l]
	DReK float64 // ∂/∂VRe[k]
	DImK float64 // ∂/∂VIm[k]
}

// BranchTerm evaluates the active (P, Pf) or reactive (Q, Qf) bracket of one
// branch with admittance g + j·b between voltages vl (near) and vk (far).
// The bracket does not include the branch status factor.
func BranchTerm(kind Kind, g, b float64, vl, vk Voltage) (Term, error) {
	switch kind {
	case P, Pf:
		return activeTerm(g, b, vl, vk), nil
	case Q, Qf:
		return reactiveTerm(g, b, vl, vk), nil
	default:
		return Term{}, fmt.Errorf("BranchTerm(%v): %w", kind, ErrUnknownKind)
	}
}

// activeTerm: g(a²+c²) − g(ad+ce) + b(ae−cd).
func activeTerm(g, b float64, vl, vk Voltage) Term {
	a, c, d, e := vl.Re, vl.Im, vk.Re, vk.Im

	return Term{
		Value: g*(a*a+c*c) - g*(a*d+c*e) + b*(a*e-c*d),
		DReL:  2*g*a - g*d + b*e,
		DImL:  2*g*c - g*e - b*d,
		DReK:  -g*a - b*c,
		DImK:  -g*c + b*a,
	}
}

// reactiveTerm: −b(a²+c²) + b(ad+ce) + g(ae−cd).
func reactiveTerm(g, b float64, vl, vk Voltage) Term {
	a, c, d, e := vl.Re, vl.Im, vk.Re, vk.Im

	return Term{
		Value: -b*(a*a+c*c) + b*(a*d+c*e) + g*(a*e-c*d),
		DReL:  -2*b*a + b*d + g*e,
		DImL:  -2*b*c + b*e - g*d,
		DReK:  b*a - g*c,
		DImK:  b*c + g*a,
	}
}

func voltageAt(st State, bus int) Voltage {
	return Voltage{Re: st.VRe(bus), Im: st.VIm(bus)}
}

// Predict returns the model value of m at state st.
//
// Errors: ErrNilNetwork, ErrNilState, ErrUnknownKind, network.ErrUnknownBus,
// network.ErrUnknownBranch. None can occur for a measurement that passed
// Validate against the same network.
func Predict(net *network.Network, st State, m Measurement) (float64, error) {
	if net == nil {
		return 0, ErrNilNetwork
	}
	if st == nil {
		return 0, ErrNilState
	}

	switch m.Kind {
	case V2:
		if !net.HasBus(m.Bus) {
			return 0, fmt.Errorf("Predict(%s): %w", m, network.ErrUnknownBus)
		}
		v := voltageAt(st, m.Bus)

		return v.Re*v.Re + v.Im*v.Im, nil

	case P, Q:
		nbs, err := net.Neighbors(m.Bus)
		if err != nil {
			return 0, fmt.Errorf("Predict(%s): %w", m, err)
		}
		vl := voltageAt(st, m.Bus)
		var sum float64
		for _, nb := range nbs {
			t, _ := BranchTerm(m.Kind, nb.G, nb.B, vl, voltageAt(st, nb.Bus))
			sum += st.Status(nb.Branch) * t.Value
		}

		return sum, nil

	case Pf, Qf:
		idx, g, b, err := flowBranch(net, m)
		if err != nil {
			return 0, err
		}
		t, _ := BranchTerm(m.Kind, g, b, voltageAt(st, m.Bus), voltageAt(st, m.To))

		return st.Status(idx) * t.Value, nil

	default:
		return 0, fmt.Errorf("Predict(%v): %w", m.Kind, ErrUnknownKind)
	}
}

func flowBranch(net *network.Network, m Measurement) (idx int, g, b float64, err error) {
	idx, ok := net.IndexOf(m.Bus, m.To)
	if !ok {
		return -1, 0, 0, fmt.Errorf("%s: %w", m, network.ErrUnknownBranch)
	}
	g, b, _ = net.Admittance(m.Bus, m.To)

	return idx, g, b, nil
}
