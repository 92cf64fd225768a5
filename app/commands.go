package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stableswap/sqs/domain"
	"github.com/stableswap/sqs/sqsutil"
	"github.com/stableswap/sqs/swapmath"
)

// swapSummary is the swap command output.
type swapSummary struct {
	From              string             `json:"from"`
	To                string             `json:"to"`
	AmountIn          string             `json:"amount_in"`
	AmountOut         string             `json:"amount_out"`
	SwapType          string             `json:"swap_type"`
	Route             []string           `json:"route"`
	ExchangeRate      osmomath.Dec       `json:"exchange_rate"`
	PriceImpact       osmomath.Dec       `json:"price_impact"`
	IsHighPriceImpact bool               `json:"is_high_price_impact"`
	Result            *domain.SwapResult `json:"result,omitempty"`
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	config, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	out, _ := cmd.Flags().GetString("out")

	if from == "" {
		return fmt.Errorf("from is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := newComponents(ctx, config, false, false, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	if _, err := components.tokensUsecase.GetToken(from); err != nil {
		return err
	}

	routes := components.routerUsecase.Resolve(ctx, from)

	if to != "" {
		swapData, ok := components.routerUsecase.GetSwapData(ctx, from, to)
		if !ok {
			return domain.UnresolvedRouteError{From: from, To: to}
		}
		routes = []domain.SwapData{swapData}
	}

	bz, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return err
	}

	if out == "" {
		fmt.Println(string(bz))
		return nil
	}

	fileName := fmt.Sprintf("routes_%s.json", from)
	if err := sqsutil.WriteBytes(out, fileName, bz); err != nil {
		return err
	}

	logger.Info("routes written", zap.String("from", from), zap.Int("routes", len(routes)), zap.String("file", out+"/"+fileName))

	return nil
}

func runSwap(cmd *cobra.Command, _ []string) error {
	config, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amount, _ := cmd.Flags().GetString("amount")
	slippageRaw, _ := cmd.Flags().GetString("slippage")
	deadlineMinutes, _ := cmd.Flags().GetInt("deadline")
	execute, _ := cmd.Flags().GetBool("execute")

	if from == "" || to == "" || amount == "" {
		return fmt.Errorf("from, to and amount are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := newComponents(ctx, config, true, false, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	session, err := components.newSwapSession(config, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.SetFromToken(ctx, from); err != nil {
		return err
	}
	if err := session.SetToToken(ctx, to); err != nil {
		return err
	}

	if slippageRaw != "" {
		slippage, err := swapmath.ParseSlippage(slippageRaw)
		if err != nil {
			return err
		}
		if err := session.SetSlippage(slippage); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("infinite-approval") {
		infinite, _ := cmd.Flags().GetBool("infinite-approval")
		session.SetInfiniteApproval(infinite)
	}

	if deadlineMinutes > 0 {
		if err := session.SetTransactionDeadline(deadlineMinutes); err != nil {
			return err
		}
	}

	session.SetFromAmount(ctx, amount)
	if err := session.QuoteNow(ctx); err != nil {
		return err
	}

	summary, err := newSwapSummary(components, session.Snapshot())
	if err != nil {
		return err
	}

	if summary.IsHighPriceImpact {
		logger.Warn("high price impact", zap.String("price_impact", summary.PriceImpact.String()))
	}

	if execute {
		result, err := session.Confirm(ctx)
		if err != nil {
			return err
		}
		summary.Result = &result
	}

	bz, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(bz))

	return nil
}

func newSwapSummary(c *components, state domain.SwapState) (swapSummary, error) {
	toToken, err := c.tokensUsecase.GetToken(state.ToSymbol)
	if err != nil {
		return swapSummary{}, err
	}

	summary := swapSummary{
		From:              state.FromSymbol,
		To:                state.ToSymbol,
		AmountIn:          state.FromAmountRaw,
		AmountOut:         swapmath.FormatAmount(state.ToAmountQuoted, toToken.Decimals),
		SwapType:          state.SwapType.String(),
		ExchangeRate:      state.ExchangeRate,
		PriceImpact:       state.PriceImpact,
		IsHighPriceImpact: state.IsHighPriceImpact,
	}

	if state.SwapData != nil {
		summary.Route = state.SwapData.Route
	}

	return summary, nil
}
