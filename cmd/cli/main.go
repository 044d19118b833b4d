package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finvue/debtplan/internal/adapter/http/dto"
	"github.com/finvue/debtplan/internal/domain"
	"github.com/finvue/debtplan/internal/planner"
	"github.com/finvue/debtplan/internal/usecase"
)

var debtsFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires the planner as an embedded library: every subcommand reads
// debts from a JSON file and runs the engine in-process, no server required.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "debtplan",
		Short:         "Debt repayment planning tool",
		Long:          `Simulates debt repayment plans, payoff orders, refinance savings and debt-to-income ratios from a JSON debts file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&debtsFile, "debts", "debts.json", "Path to a JSON file listing the debts to plan against")

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newOrderCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newRatioCmd())

	return rootCmd
}

func newSimulateCmd() *cobra.Command {
	var (
		strategy      string
		budget        string
		horizon       int
		aprWeight     float64
		balanceWeight float64
		startMonth    string
		showSchedule  bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a repayment plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, err := loadDebts(debtsFile)
			if err != nil {
				return err
			}

			strat, err := domain.ParseStrategy(strategy)
			if err != nil {
				return err
			}

			budgetCents, err := domain.MoneyFromString(budget)
			if err != nil {
				return fmt.Errorf("monthly budget: %w", err)
			}

			start, err := dto.ParseStartMonth(startMonth)
			if err != nil {
				return err
			}

			schedule, err := planner.Simulate(debts, strat, budgetCents, planner.SimulationOptions{
				HorizonMonths: horizon,
				Hybrid:        planner.HybridWeights{APR: aprWeight, Balance: balanceWeight},
				StartMonth:    start,
			})
			if err != nil {
				return err
			}

			result := &usecase.PlanResult{Schedule: schedule, Summary: planner.Summarize(schedule)}

			return printJSON(cmd, dto.SimulateFromResult(result, showSchedule))
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "avalanche", "Payoff strategy: avalanche, snowball or hybrid")
	cmd.Flags().StringVar(&budget, "budget", "", "Monthly budget on top of minimum payments, e.g. 450.00")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Maximum months to simulate (0 uses the default horizon)")
	cmd.Flags().Float64Var(&aprWeight, "apr-weight", planner.DefaultHybridWeights.APR, "Hybrid strategy weight on APR")
	cmd.Flags().Float64Var(&balanceWeight, "balance-weight", planner.DefaultHybridWeights.Balance, "Hybrid strategy weight on balance")
	cmd.Flags().StringVar(&startMonth, "start-month", "", "Anchor month for payoff dates, YYYY-MM")
	cmd.Flags().BoolVar(&showSchedule, "schedule", false, "Include the full month-by-month schedule")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

func newOrderCmd() *cobra.Command {
	var (
		strategy      string
		aprWeight     float64
		balanceWeight float64
	)

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Show the payoff order without simulating",
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, err := loadDebts(debtsFile)
			if err != nil {
				return err
			}

			strat, err := domain.ParseStrategy(strategy)
			if err != nil {
				return err
			}

			order, err := planner.OrderWithWeights(debts, strat, planner.HybridWeights{APR: aprWeight, Balance: balanceWeight})
			if err != nil {
				return err
			}

			return printJSON(cmd, dto.OrderResponse{Strategy: strat.String(), Order: order})
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "avalanche", "Payoff strategy: avalanche, snowball or hybrid")
	cmd.Flags().Float64Var(&aprWeight, "apr-weight", planner.DefaultHybridWeights.APR, "Hybrid strategy weight on APR")
	cmd.Flags().Float64Var(&balanceWeight, "balance-weight", planner.DefaultHybridWeights.Balance, "Hybrid strategy weight on balance")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var (
		target    string
		offerAPR  string
		offerTerm int
		strategy  string
		budget    string
		horizon   int
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the current plan against a refinance offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, err := loadDebts(debtsFile)
			if err != nil {
				return err
			}

			strat, err := domain.ParseStrategy(strategy)
			if err != nil {
				return err
			}

			budgetCents, err := domain.MoneyFromString(budget)
			if err != nil {
				return fmt.Errorf("monthly budget: %w", err)
			}

			apr, err := decimal.NewFromString(offerAPR)
			if err != nil {
				return fmt.Errorf("offer APR: %w", err)
			}

			comparison, err := planner.CompareRefinancing(debts, target, planner.RefinanceOffer{
				APR:        apr,
				TermMonths: offerTerm,
			}, strat, budgetCents, planner.SimulationOptions{HorizonMonths: horizon})
			if err != nil {
				return err
			}

			return printJSON(cmd, dto.CompareFromDomain(comparison))
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "ID of the debt the offer would replace")
	cmd.Flags().StringVar(&offerAPR, "offer-apr", "", "APR of the refinance offer, e.g. 0.09")
	cmd.Flags().IntVar(&offerTerm, "offer-term", 0, "Term of the offer in months (0 keeps the current minimum payment)")
	cmd.Flags().StringVar(&strategy, "strategy", "avalanche", "Payoff strategy: avalanche, snowball or hybrid")
	cmd.Flags().StringVar(&budget, "budget", "", "Monthly budget on top of minimum payments, e.g. 450.00")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Maximum months to simulate (0 uses the default horizon)")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("offer-apr")
	_ = cmd.MarkFlagRequired("budget")

	return cmd
}

func newRatioCmd() *cobra.Command {
	var income string

	cmd := &cobra.Command{
		Use:   "ratio",
		Short: "Compute the debt-to-income ratio",
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, err := loadDebts(debtsFile)
			if err != nil {
				return err
			}

			monthlyIncome, err := domain.MoneyFromString(income)
			if err != nil {
				return fmt.Errorf("monthly income: %w", err)
			}

			ratio, err := planner.DebtToIncomeRatio(debts, monthlyIncome)
			if err != nil {
				return err
			}

			return printJSON(cmd, dto.RatioResponse{Ratio: ratio.StringFixed(4)})
		},
	}

	cmd.Flags().StringVar(&income, "income", "", "Gross monthly income, e.g. 5200.00")
	_ = cmd.MarkFlagRequired("income")

	return cmd
}

// loadDebts reads the same JSON debt shape the HTTP API accepts.
func loadDebts(path string) ([]domain.Debt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read debts file: %w", err)
	}

	var reqs []dto.DebtRequest
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("parse debts file: %w", err)
	}

	return dto.DebtsToDomain(reqs)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}
