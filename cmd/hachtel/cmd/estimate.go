package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hachtel/cases"
	"github.com/katalvlaran/hachtel/estimator"
)

// Output formats of the estimate command.
const (
	formatText = "text"
	formatYAML = "yaml"
)

type estimateFlags struct {
	caseName  string
	size      int
	seed      int64
	amplitude float64
	flip      []string
	suspect   []string
	format    string
}

func newEstimateCommand(a *app) *cobra.Command {
	f := &estimateFlags{}
	c := &cobra.Command{
		Use:   "estimate",
		Short: "Run the estimator on a built-in case",
		Long: `Run the estimator on a built-in case and print bus voltages, branch
statuses ranked by normalized multiplier, and measurement residuals.

Flags override the config file. When the config lists hypotheses, each is
solved concurrently and the one the measurements contradict least is marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, a, f)
		},
	}

	fl := c.Flags()
	fl.StringVarP(&f.caseName, "case", "c", "", "case name (see 'hachtel cases')")
	fl.IntVar(&f.size, "size", 0, "ring buses or grid side of generated cases")
	fl.Int64Var(&f.seed, "seed", 0, "operating point and noise seed")
	fl.Float64Var(&f.amplitude, "amplitude", 0, "noise amplitude in standard deviations")
	fl.StringSliceVar(&f.flip, "flip", nil, "branch ids whose assumed status is inverted")
	fl.StringSliceVar(&f.suspect, "suspect", nil, "branch ids whose status rows are relaxed")
	fl.StringVarP(&f.format, "format", "f", formatText, "output format (text, yaml)")

	return c
}

// apply copies the flags the user set into the loaded config.
func (f *estimateFlags) apply(cmd *cobra.Command, a *app) error {
	fl := cmd.Flags()
	cc := &a.cfg.Case
	if fl.Changed("case") {
		cc.Name = f.caseName
	}
	if fl.Changed("size") {
		cc.Size = f.size
	}
	if fl.Changed("seed") {
		cc.Seed = f.seed
	}
	if fl.Changed("amplitude") {
		cc.Amplitude = f.amplitude
	}
	if fl.Changed("flip") {
		cc.Flip = f.flip
	}
	if fl.Changed("suspect") {
		cc.Suspect = f.suspect
	}
	if f.format != formatText && f.format != formatYAML {
		return fmt.Errorf("unknown format %q", f.format)
	}

	return a.cfg.Validate()
}

func runEstimate(cmd *cobra.Command, a *app, f *estimateFlags) error {
	if err := f.apply(cmd, a); err != nil {
		return err
	}
	cfg := a.cfg

	c, err := cases.ByName(cfg.Case.Name, cfg.Params())
	if err != nil {
		return fmt.Errorf("building case: %w", err)
	}
	if len(cfg.Case.Flip) > 0 {
		if c.Assumption, err = cases.Flip(c.Network, c.Assumption, cfg.Case.Flip...); err != nil {
			return fmt.Errorf("flipping branches: %w", err)
		}
	}
	opts := append(cfg.Options(), estimator.WithLogger(a.log.With(zap.String("case", c.Name))))

	if len(cfg.Hypotheses) > 0 {
		return runHypotheses(cmd, c, opts, f.format, a)
	}

	res, err := estimator.Estimate(c.Problem(), opts...)
	if err != nil {
		return fmt.Errorf("estimating: %w", err)
	}
	rep, err := estimator.NewReport(res, cfg.Solver.StatusThreshold)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.format == formatYAML {
		return yaml.NewEncoder(out).Encode(rep)
	}
	printReport(out, c.Name, res, rep)

	return nil
}

func runHypotheses(cmd *cobra.Command, c *cases.Case, opts []estimator.Option, format string, a *app) error {
	hs := make([]estimator.Hypothesis, 0, len(a.cfg.Hypotheses))
	for _, hc := range a.cfg.Hypotheses {
		assumption, err := cases.Flip(c.Network, c.Assumption, hc.Flip...)
		if err != nil {
			return fmt.Errorf("hypothesis %q: %w", hc.Name, err)
		}
		hs = append(hs, estimator.Hypothesis{Name: hc.Name, Assumption: assumption, Suspects: hc.Suspect})
	}

	results, err := estimator.EvaluateHypotheses(cmd.Context(), c.Problem(), hs, opts...)
	if err != nil {
		return err
	}
	best, ok := estimator.Best(results)

	out := cmd.OutOrStdout()
	if format == formatYAML {
		type row struct {
			Name       string           `yaml:"name"`
			Best       bool             `yaml:"best"`
			Status     estimator.Status `yaml:"status"`
			Iterations int              `yaml:"iterations"`
			Top        string           `yaml:"top_branch,omitempty"`
			TopValue   float64          `yaml:"top_normalized,omitempty"`
		}
		rows := make([]row, 0, len(results))
		for _, hr := range results {
			r := row{
				Name:       hr.Hypothesis.Name,
				Best:       ok && hr.Hypothesis.Name == best.Hypothesis.Name,
				Status:     hr.Result.Status,
				Iterations: hr.Result.Iterations,
			}
			if top := estimator.RankAnomalies(hr.Result); len(top) > 0 {
				r.Top, r.TopValue = top[0].ID, top[0].Normalized
			}
			rows = append(rows, r)
		}

		return yaml.NewEncoder(out).Encode(rows)
	}

	fmt.Fprintf(out, "case %s: %d hypotheses\n", c.Name, len(results))
	for _, hr := range results {
		mark := " "
		if ok && hr.Hypothesis.Name == best.Hypothesis.Name {
			mark = "*"
		}
		top := "-"
		if ranked := estimator.RankAnomalies(hr.Result); len(ranked) > 0 {
			top = fmt.Sprintf("%s %.4f", ranked[0].ID, ranked[0].Normalized)
		}
		fmt.Fprintf(out, "%s %-16s %-10s iter=%-3d top=%s\n",
			mark, hr.Hypothesis.Name, hr.Result.Status, hr.Result.Iterations, top)
	}

	return nil
}

func printReport(w io.Writer, name string, res *estimator.Result, rep *estimator.Report) {
	fmt.Fprintf(w, "case %s: %s after %d iterations (last step %.3g)\n",
		name, rep.Status, rep.Iterations, rep.LastStepNorm)
	if d := res.Diagnosis; d != nil {
		fmt.Fprintf(w, "suspected blocks: %v\n", d.BlockNames())
		if len(d.Unobserved) > 0 {
			fmt.Fprintf(w, "unobserved: %v\n", d.Unobserved)
		}
	}

	fmt.Fprintln(w, "\nbus      |V|     angle")
	for _, b := range rep.Buses {
		fmt.Fprintf(w, "%3d  %8.5f  %8.4f\n", b.Bus, b.Magnitude, b.AngleDeg)
	}

	fmt.Fprintln(w, "\nbranch  assumed  status  closed  normalized")
	byID := make(map[string]estimator.BranchEstimate, len(rep.Branches))
	for _, br := range rep.Branches {
		byID[br.ID] = br
	}
	ranked := estimator.RankAnomalies(res)
	if ranked == nil {
		for _, br := range rep.Branches {
			ranked = append(ranked, estimator.Anomaly{Branch: br.Index, ID: br.ID})
		}
	}
	for _, an := range ranked {
		br := byID[an.ID]
		fmt.Fprintf(w, "%-6s  %7.0f  %6.3f  %-6t  %10.4f\n", br.ID, br.Assumed, br.Status, br.Closed, br.Normalized)
	}

	fmt.Fprintln(w, "\nmeasurement  measured  estimated  residual")
	for _, m := range rep.Measurements {
		fmt.Fprintf(w, "%-11s  %8.4f  %9.4f  %8.1e\n", m.Label, m.Measured, m.Estimated, m.Residual)
	}
	fmt.Fprintf(w, "\nobjective %.4g\n", rep.Objective)
}
