package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of rules and calculator input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRules loads a rules file and overlays it on the compiled-in defaults,
// so a file only needs the sections it changes. An empty filename returns
// the defaults.
func (ip *InputParser) LoadRules(filename string) (*domain.Rules, error) {
	if filename == "" {
		return calculation.DefaultRules(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	rules, err := ip.ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rules, nil
}

// ParseRules decodes YAML (or JSON) rules over the defaults and validates
// the result.
func (ip *InputParser) ParseRules(data []byte) (*domain.Rules, error) {
	rules := calculation.DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// state codes are looked up upper-case
	states := make(map[string]domain.StateRules, len(rules.States))
	for code, s := range rules.States {
		states[strings.ToUpper(strings.TrimSpace(code))] = s
	}
	rules.States = states

	if err := ip.ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateRules checks the loaded tax tables and market assumptions
func (ip *InputParser) ValidateRules(rules *domain.Rules) error {
	if rules == nil {
		return errors.New("rules are required")
	}
	if err := ip.validateFederalTax(&rules.FederalTax); err != nil {
		return fmt.Errorf("federal tax: %w", err)
	}
	if err := ip.validateFICA(&rules.FICA); err != nil {
		return fmt.Errorf("fica: %w", err)
	}
	for code, state := range rules.States {
		if err := ip.validateState(code, &state); err != nil {
			return fmt.Errorf("state %s: %w", code, err)
		}
	}
	if err := ip.validateMarket(&rules.Market); err != nil {
		return fmt.Errorf("market assumptions: %w", err)
	}
	return nil
}

func (ip *InputParser) validateFederalTax(f *domain.FederalTaxRules) error {
	schedules := []struct {
		name     string
		brackets []domain.TaxBracket
	}{
		{"single", f.BracketsSingle},
		{"married filing jointly", f.BracketsMFJ},
		{"head of household", f.BracketsHeadOfHousehold},
	}
	for _, s := range schedules {
		if err := validateBrackets(s.brackets); err != nil {
			return fmt.Errorf("%s brackets: %w", s.name, err)
		}
	}

	sd := f.StandardDeduction
	if sd.Single.IsNegative() || sd.MarriedFilingJointly.IsNegative() || sd.HeadOfHousehold.IsNegative() {
		return fmt.Errorf("standard deductions cannot be negative")
	}
	return nil
}

// validateBrackets requires a schedule starting at zero whose brackets are
// contiguous, with only the last one unbounded.
func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", brackets[0].Min)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate must be between 0 and 1", i)
		}
		if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
			return fmt.Errorf("bracket %d: starts at %s but the previous bracket ends at %s", i, b.Min, brackets[i-1].Max)
		}
		if b.Unbounded() && i != len(brackets)-1 {
			return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
		}
	}
	return nil
}

func (ip *InputParser) validateFICA(f *domain.FICARules) error {
	if !isFraction(f.SocialSecurityRate) {
		return fmt.Errorf("social security rate must be between 0 and 1")
	}
	if !isFraction(f.MedicareRate) {
		return fmt.Errorf("medicare rate must be between 0 and 1")
	}
	if f.SocialSecurityWageBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("social security wage base must be positive")
	}
	return nil
}

func (ip *InputParser) validateState(code string, s *domain.StateRules) error {
	if len(code) != 2 {
		return fmt.Errorf("state code must be two letters")
	}
	if !isFraction(s.IncomeTaxRate) {
		return fmt.Errorf("income tax rate must be between 0 and 1")
	}
	if !isFraction(s.DisabilityRate) {
		return fmt.Errorf("disability rate must be between 0 and 1")
	}
	return nil
}

func (ip *InputParser) validateMarket(m *domain.MarketAssumptions) error {
	for class, a := range m.Assets {
		if a.ExpectedReturn <= -1 {
			return fmt.Errorf("%s: expected return cannot be -100%% or lower", class)
		}
		if a.Volatility < 0 {
			return fmt.Errorf("%s: volatility cannot be negative", class)
		}
	}
	if m.StockBondCorrelation < -1 || m.StockBondCorrelation > 1 {
		return fmt.Errorf("stock/bond correlation must be between -1 and 1")
	}
	if m.InflationRate < -0.10 {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	return nil
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}

// LoadInput decodes a calculator input file into target, which must be a
// pointer to one of the domain input types. Unknown keys are rejected.
func (ip *InputParser) LoadInput(filename string, target any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}

// LoadFields reads a flat field file, the same names the CLI flags and the
// HTTP API use, into a field bag. Files ending in .toml are read as TOML,
// everything else as YAML (which covers JSON).
func (ip *InputParser) LoadFields(filename string) (numeric.Fields, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	fields := numeric.Fields{}
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		err = toml.Unmarshal(data, &fields)
	} else {
		err = yaml.Unmarshal(data, &fields)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return fields, nil
}
