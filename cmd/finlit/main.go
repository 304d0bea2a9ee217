package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/finlit/internal/calculation"
	"github.com/rgehrsitz/finlit/internal/config"
	"github.com/rgehrsitz/finlit/internal/logging"
	"github.com/rgehrsitz/finlit/internal/numeric"
	"github.com/rgehrsitz/finlit/internal/output"
	"github.com/rgehrsitz/finlit/internal/validation"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// calculatorInfo describes one calculator subcommand.
type calculatorInfo struct {
	title string
	short string
	// extra lists fields the calculator reads that its schema does not check.
	extra []string
}

var calculatorInfos = map[string]calculatorInfo{
	"paycheck": {
		title: "Paycheck",
		short: "Break a gross paycheck into taxes, deductions and net pay",
		extra: []string{validation.FieldFilingStatus, validation.FieldState},
	},
	"growth": {
		title: "Compound Interest",
		short: "Project compound growth with monthly contributions",
	},
	"mortgage": {
		title: "Mortgage",
		short: "Compute the monthly payment and amortization schedule",
	},
	"retirement": {
		title: "Retirement Projection",
		short: "Project savings at retirement against an income goal",
	},
	"portfolio": {
		title: "Portfolio Analysis",
		short: "Analyze holdings for allocation, risk and rebalancing",
		extra: []string{validation.FieldHoldings, validation.FieldTargets, validation.FieldRiskTolerance},
	},
	"montecarlo": {
		title: "Monte Carlo Simulation",
		short: "Simulate portfolio outcomes across randomized market paths",
		extra: []string{validation.FieldSeed},
	},
	"options": {
		title: "Option Strategy",
		short: "Price an option strategy and chart its payoff at expiration",
		extra: []string{validation.FieldStrategy},
	},
	"credit": {
		title: "Credit Score",
		short: "Estimate a credit score and compare it with a target profile",
	},
	"budget": {
		title: "Budget",
		short: "Check spending against the 50/30/20 guideline",
	},
	"valuation": {
		title: "Business Valuation",
		short: "Value a business by discounted cash flow and multiples",
		extra: []string{validation.FieldCashFlows},
	},
	"crypto": {
		title: "Crypto Allocation",
		short: "Recommend a crypto allocation for a risk tolerance",
		extra: []string{validation.FieldRiskTolerance, validation.FieldCryptoPositions},
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finlit %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finlit",
		Short: "Financial literacy calculators",
		Long: "Paycheck, growth, mortgage, retirement, portfolio, Monte Carlo, options, credit,\n" +
			"budget, valuation and crypto calculators over one shared rules set.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("format", "f", "table", "Output format ("+strings.Join(output.AvailableFormatAliases(), ", ")+")")
	rootCmd.PersistentFlags().String("rules", "", "Path to a rules file overlaid on the built-in tax and market data")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")

	for _, name := range calculation.Calculators {
		rootCmd.AddCommand(calculatorCmd(name))
	}
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(rulesCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

// calculatorCmd builds a subcommand with one string flag per field. Values
// are passed to the engine raw so "$5,000" and "6.5%" behave as in a form.
func calculatorCmd(name string) *cobra.Command {
	info := calculatorInfos[name]
	cmd := &cobra.Command{
		Use:   name,
		Short: info.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := collectFields(cmd, name)
			if err != nil {
				return err
			}
			return runCalculator(cmd, name, fields)
		},
	}
	addFieldFlags(cmd, name)
	cmd.Flags().Bool("strict", false, "Fail instead of falling back to defaults when fields are invalid")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func addFieldFlags(cmd *cobra.Command, name string) {
	schema := validation.Schemas[name]
	for _, field := range fieldNames(name) {
		usage := field
		if rule, ok := schema[field]; ok {
			usage = rule.Label
			if rule.Required {
				usage += " (required)"
			}
		}
		cmd.Flags().String(field, "", usage)
	}
	cmd.Flags().StringP("input", "i", "", "YAML, JSON or TOML file of field values; flags override it")
	cmd.Flags().StringArray("set", nil, "Additional field as name=value (repeatable)")
}

// fieldNames lists the schema fields followed by the extras, sorted.
func fieldNames(name string) []string {
	seen := map[string]bool{}
	var names []string
	for field := range validation.Schemas[name] {
		seen[field] = true
		names = append(names, field)
	}
	for _, field := range calculatorInfos[name].extra {
		if !seen[field] {
			names = append(names, field)
		}
	}
	sort.Strings(names)
	return names
}

// collectFields merges the input file, the field flags and --set pairs in
// that order.
func collectFields(cmd *cobra.Command, name string) (numeric.Fields, error) {
	fields := numeric.Fields{}
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		loaded, err := config.NewInputParser().LoadFields(input)
		if err != nil {
			return nil, err
		}
		for k, v := range loaded {
			fields[k] = v
		}
	}
	for _, field := range fieldNames(name) {
		if cmd.Flags().Changed(field) {
			v, _ := cmd.Flags().GetString(field)
			fields[field] = v
		}
	}
	pairs, _ := cmd.Flags().GetStringArray("set")
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --set value %q, expected name=value", pair)
		}
		fields[strings.TrimSpace(k)] = v
	}
	return fields, nil
}

func newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	rules, err := config.NewInputParser().LoadRules(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	engine := calculation.NewEngineWithRules(rules)
	if debugFlag, _ := cmd.Flags().GetBool("debug"); debugFlag {
		engine.SetLogger(logging.NewEngineLogger(logging.NewConsoleLogger(cmd.ErrOrStderr(), zapcore.DebugLevel)))
	}
	return engine, nil
}

func formatter(cmd *cobra.Command) (output.Formatter, error) {
	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(output.AvailableFormatAliases(), ", "))
	}
	return f, nil
}

func runCalculator(cmd *cobra.Command, name string, fields numeric.Fields) error {
	f, err := formatter(cmd)
	if err != nil {
		return err
	}
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	ev, err := engine.Evaluate(cmd.Context(), name, fields)
	if err != nil {
		return err
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict && !ev.Validation.IsValid {
		return fmt.Errorf("%d invalid field(s): %s", len(ev.Validation.Errors), strings.Join(ev.Validation.Fields(), ", "))
	}

	report, err := output.BuildEvaluationReport(calculatorInfos[name].title, ev)
	if err != nil {
		return err
	}
	if save, _ := cmd.Flags().GetBool("save"); save {
		ext := f.Name()
		if ext == "table" {
			ext = "txt"
		}
		filename, err := output.WriteFormatted(f, report, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "validate <calculator>",
		Short:     "Check field values against a calculator's rules without running it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: calculation.Calculators,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToLower(args[0])
			schema, ok := validation.Schemas[name]
			if !ok {
				return fmt.Errorf("unknown calculator %q (valid: %s)", args[0], strings.Join(calculation.Calculators, ", "))
			}
			fields, err := collectFields(cmd, name)
			if err != nil {
				return err
			}

			result := validation.ValidateFields(fields.Strings(), schema)
			if format, _ := cmd.Flags().GetString("format"); format != "table" {
				f, err := formatter(cmd)
				if err != nil {
					return err
				}
				report, err := output.BuildReport("Validation", result)
				if err != nil {
					return err
				}
				data, err := f.Format(report)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else if result.IsValid {
				fmt.Fprintf(cmd.OutOrStdout(), "All %s fields are valid\n", name)
			} else {
				for _, field := range result.Fields() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", field, result.Errors[field], result.Codes[field])
				}
			}
			if !result.IsValid {
				return fmt.Errorf("%d invalid field(s)", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringP("input", "i", "", "YAML, JSON or TOML file of field values")
	cmd.Flags().StringArray("set", nil, "Field as name=value (repeatable)")
	return cmd
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [file]",
		Short: "Validate a rules file and summarize the data it resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("rules")
			if len(args) == 1 {
				file = args[0]
			}
			rules, err := config.NewInputParser().LoadRules(file)
			if err != nil {
				return err
			}
			source := file
			if source == "" {
				source = "built-in rules"
			}
			states := make([]string, 0, len(rules.States))
			for code := range rules.States {
				states = append(states, code)
			}
			sort.Strings(states)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", source)
			fmt.Fprintf(cmd.OutOrStdout(), "Data year: %d\n", rules.Metadata.DataYear)
			fmt.Fprintf(cmd.OutOrStdout(), "States: %s\n", strings.Join(states, ", "))
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
