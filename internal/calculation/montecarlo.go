package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
)

const (
	DefaultTrials      = 1000
	DefaultBatchSize   = 50
	DefaultTimeHorizon = 30
	MaxTrials          = 50_000
	MaxTimeHorizon     = 100
)

// Percentiles reported for every simulated year.
var Percentiles = [5]float64{0.10, 0.25, 0.50, 0.75, 0.90}

// Simulator runs a two-asset Monte Carlo projection in batches of trials.
// It is not safe for concurrent use; drive it from a single goroutine with
// Step or Run.
type Simulator struct {
	params domain.SimulationParams
	src    numeric.Source
	state  domain.SimulationState
	runID  string

	// values[year][trial]
	values [][]float64
	done   int
	result *domain.SimulationResult

	// OnBatch, if set, is called by Run after every batch.
	OnBatch func(done, total int)
}

// NewSimulator creates an idle simulator. Zero-valued trial count, batch size
// and horizon take their defaults; a nil source is seeded from the clock.
func NewSimulator(params domain.SimulationParams, src numeric.Source) *Simulator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		params: applySimulationDefaults(params),
		src:    src,
		state:  domain.SimulationIdle,
	}
}

func applySimulationDefaults(p domain.SimulationParams) domain.SimulationParams {
	if p.Trials == 0 {
		p.Trials = DefaultTrials
	}
	if p.BatchSize <= 0 {
		p.BatchSize = DefaultBatchSize
	}
	if p.TimeHorizon == 0 {
		p.TimeHorizon = DefaultTimeHorizon
	}
	return p
}

// ValidateSimulationParams rejects parameters the simulation cannot run with.
func ValidateSimulationParams(p domain.SimulationParams) error {
	fail := func(format string, args ...any) error {
		return &CalculationError{Operation: "monte carlo", Message: fmt.Sprintf(format, args...)}
	}
	for name, v := range map[string]float64{
		"initial value": p.InitialValue, "monthly contribution": p.MonthlyContribution,
		"stock percent": p.StockPercent, "bond percent": p.BondPercent,
		"stock mean": p.StockMean, "stock volatility": p.StockVolatility,
		"bond mean": p.BondMean, "bond volatility": p.BondVolatility,
		"correlation": p.Correlation, "withdrawal rate": p.WithdrawalRate,
		"goal income": p.GoalAnnualIncome,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fail("%s is not a finite number", name)
		}
	}
	switch {
	case p.Trials < 1 || p.Trials > MaxTrials:
		return fail("trials must be between 1 and %d, got %d", MaxTrials, p.Trials)
	case p.TimeHorizon < 1 || p.TimeHorizon > MaxTimeHorizon:
		return fail("time horizon must be between 1 and %d years, got %d", MaxTimeHorizon, p.TimeHorizon)
	case p.InitialValue < 0 || p.MonthlyContribution < 0:
		return fail("initial value and contributions cannot be negative")
	case p.StockPercent < 0 || p.BondPercent < 0 || p.StockPercent+p.BondPercent > 100.0001:
		return fail("stock and bond allocation must be non-negative and total at most 100%%")
	case p.StockVolatility < 0 || p.BondVolatility < 0:
		return fail("volatility cannot be negative")
	case p.Correlation < -1 || p.Correlation > 1:
		return fail("correlation must be between -1 and 1")
	case p.WithdrawalRate < 0:
		return fail("withdrawal rate cannot be negative")
	}
	return nil
}

// State reports where the run is in its lifecycle.
func (s *Simulator) State() domain.SimulationState { return s.state }

// Params returns the parameters after defaults were applied.
func (s *Simulator) Params() domain.SimulationParams { return s.params }

// Completed is the number of trials run so far.
func (s *Simulator) Completed() int { return s.done }

// Progress is the completed fraction of trials, 0..1.
func (s *Simulator) Progress() float64 {
	if s.params.Trials <= 0 {
		return 0
	}
	return float64(s.done) / float64(s.params.Trials)
}

// Step runs one batch of trials and reports whether the run is complete. The
// first call validates the parameters; a validation error leaves the
// simulator idle.
func (s *Simulator) Step() (bool, error) {
	switch s.state {
	case domain.SimulationComplete:
		return true, nil
	case domain.SimulationCancelled:
		return false, ErrCancelled
	case domain.SimulationIdle:
		if err := ValidateSimulationParams(s.params); err != nil {
			return false, err
		}
		s.values = make([][]float64, s.params.TimeHorizon+1)
		for y := range s.values {
			s.values[y] = make([]float64, s.params.Trials)
		}
		s.runID = uuid.NewString()
		s.state = domain.SimulationRunning
	}

	end := s.done + s.params.BatchSize
	if end > s.params.Trials {
		end = s.params.Trials
	}
	for trial := s.done; trial < end; trial++ {
		s.runTrial(trial)
	}
	s.done = end

	if s.done < s.params.Trials {
		return false, nil
	}
	s.result = s.aggregate()
	s.values = nil
	s.state = domain.SimulationComplete
	return true, nil
}

// Cancel abandons a run that has not completed. Partial trials are dropped.
func (s *Simulator) Cancel() {
	if s.state == domain.SimulationComplete {
		return
	}
	s.state = domain.SimulationCancelled
	s.values = nil
}

// Result returns the aggregated result of a completed run.
func (s *Simulator) Result() (*domain.SimulationResult, error) {
	switch s.state {
	case domain.SimulationComplete:
		return s.result, nil
	case domain.SimulationCancelled:
		return nil, ErrCancelled
	default:
		return nil, ErrNotComplete
	}
}

// Run steps through every batch, yielding the processor between batches and
// cancelling if ctx is done.
func (s *Simulator) Run(ctx context.Context) (*domain.SimulationResult, error) {
	for {
		select {
		case <-ctx.Done():
			s.Cancel()
			return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		default:
		}

		complete, err := s.Step()
		if err != nil {
			return nil, err
		}
		if s.OnBatch != nil {
			s.OnBatch(s.done, s.params.Trials)
		}
		if complete {
			return s.Result()
		}
		runtime.Gosched()
	}
}

// weights splits the portfolio between stocks and bonds in proportion to the
// allocation percentages. An empty allocation holds cash at no return.
func (s *Simulator) weights() (float64, float64) {
	sum := s.params.StockPercent + s.params.BondPercent
	if sum <= 0 {
		return 0, 0
	}
	return s.params.StockPercent / sum, s.params.BondPercent / sum
}

func (s *Simulator) runTrial(trial int) {
	p := s.params
	ws, wb := s.weights()
	annualContribution := 12 * p.MonthlyContribution

	v := p.InitialValue
	s.values[0][trial] = v
	for year := 1; year <= p.TimeHorizon; year++ {
		rs, rb := numeric.CorrelatedPair(s.src, p.StockMean, p.StockVolatility, p.BondMean, p.BondVolatility, p.Correlation)
		r := ws*rs + wb*rb
		v = v*(1+r) + annualContribution
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		if math.IsInf(v, 1) {
			v = math.MaxFloat64
		}
		s.values[year][trial] = v
	}
}

// percentile reads the p-th percentile from sorted values at index floor(p*n).
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	i := int(math.Floor(p * float64(len(sorted))))
	if i < 0 {
		i = 0
	}
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

func band(year int, sorted []float64) domain.PercentileBand {
	return domain.PercentileBand{
		Year: year,
		P10:  percentile(sorted, Percentiles[0]),
		P25:  percentile(sorted, Percentiles[1]),
		P50:  percentile(sorted, Percentiles[2]),
		P75:  percentile(sorted, Percentiles[3]),
		P90:  percentile(sorted, Percentiles[4]),
	}
}

func (s *Simulator) aggregate() *domain.SimulationResult {
	p := s.params
	res := &domain.SimulationResult{
		RunID:            s.runID,
		Trials:           p.Trials,
		TimeHorizon:      p.TimeHorizon,
		Bands:            make([]domain.PercentileBand, 0, p.TimeHorizon+1),
		TotalContributed: p.InitialValue + 12*p.MonthlyContribution*float64(p.TimeHorizon),
	}

	for year, row := range s.values {
		sorted := append([]float64(nil), row...)
		sort.Float64s(sorted)
		res.Bands = append(res.Bands, band(year, sorted))
	}
	res.Final = res.Bands[len(res.Bands)-1]
	res.MedianFinalValue = res.Final.P50

	var sum float64
	successes := 0
	for _, final := range s.values[p.TimeHorizon] {
		sum += final
		if final <= 0 {
			res.DepletedTrials++
		}
		if simulationSucceeded(final, p.WithdrawalRate, p.GoalAnnualIncome) {
			successes++
		}
	}
	res.MeanFinalValue = numeric.Finite(sum / float64(p.Trials))
	res.SuccessRate = numeric.Round(100*float64(successes)/float64(p.Trials), 2)

	if res.DepletedTrials > 0 {
		res.Warnings.Add(domain.WarnSimulationDepleted,
			fmt.Sprintf("%d of %d trials ran out of money", res.DepletedTrials, p.Trials))
	}
	res.Insights = simulationInsights(res)
	return res
}

// simulationSucceeded is a heuristic: a trial succeeds when withdrawing at
// the given rate from the final balance funds the goal income. Without a
// goal, any money left over is a success.
func simulationSucceeded(final, withdrawalRate, goal float64) bool {
	if goal <= 0 {
		return final > 0
	}
	return final*withdrawalRate >= goal
}

func simulationInsights(r *domain.SimulationResult) []string {
	insights := []string{
		fmt.Sprintf("%.1f%% of %d trials met the income goal", r.SuccessRate, r.Trials),
		fmt.Sprintf("Median outcome after %d years: $%.0f (10th-90th percentile $%.0f to $%.0f)",
			r.TimeHorizon, r.Final.P50, r.Final.P10, r.Final.P90),
	}
	switch {
	case r.SuccessRate >= 90:
		insights = append(insights, "The plan holds up in most simulated markets")
	case r.SuccessRate >= 70:
		insights = append(insights, "The plan works in most markets but is exposed to poor sequences of returns")
	default:
		insights = append(insights, "The plan fails too often; consider saving more, working longer or lowering the goal")
	}
	if r.TotalContributed > 0 && r.Final.P10 < r.TotalContributed {
		insights = append(insights, "In the worst 10% of trials the portfolio ends below the amount contributed")
	}
	return insights
}

// NewSimulation creates a simulator seeded from params.Seed, or from the
// clock when no seed is set.
func (e *Engine) NewSimulation(params domain.SimulationParams) *Simulator {
	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewSimulator(params, rand.New(rand.NewSource(seed)))
}

// RunMonteCarlo runs a full simulation to completion.
func (e *Engine) RunMonteCarlo(ctx context.Context, params domain.SimulationParams) (*domain.SimulationResult, error) {
	sim := e.NewSimulation(params)
	p := sim.Params()
	e.logger().Infof("monte carlo: starting %d trials over %d years", p.Trials, p.TimeHorizon)

	res, err := sim.Run(ctx)
	if err != nil {
		e.logger().Warnf("monte carlo: %v", err)
		return nil, fmt.Errorf("monte carlo simulation: %w", err)
	}
	e.logger().Infof("monte carlo: run %s complete, success rate %.1f%%", res.RunID, res.SuccessRate)
	return res, nil
}
