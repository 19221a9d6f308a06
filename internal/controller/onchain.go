package controller

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/evmrpc"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/store"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

// Onchain drives a deployed Swappy proxy. Every transaction is signed by the
// service key, so the swap caller is always the signer.
type Onchain struct {
	base
	evmRpc evmrpc.IEvmRPC
}

func NewOnchain(evmRpc evmrpc.IEvmRPC, db *gorm.DB, store *store.Store, config *config.AppConfig, logger *logger.Logger, metrics Metrics) IController {
	return &Onchain{
		base: base{
			mode:    config.Facilitator.Mode,
			db:      db,
			store:   store,
			config:  config,
			logger:  logger,
			metrics: metrics,
		},
		evmRpc: evmRpc,
	}
}

func (c *Onchain) Initialize(ctx context.Context, router, wrappedNative common.Address) (*InitializeResult, error) {
	// zero addresses would only burn gas on a revert
	if router == (common.Address{}) || wrappedNative == (common.Address{}) {
		c.metrics.RecordInitialization(c.mode, outcomeOf(facilitator.ErrInvalidConfiguration))
		return nil, facilitator.ErrInvalidConfiguration
	}

	receipt, err := c.evmRpc.Initialize(ctx, router, wrappedNative)
	c.metrics.RecordInitialization(c.mode, outcomeOf(err))
	if err != nil {
		c.logger.Error("[Initialize][evmRpc.Initialize]", map[string]string{
			"router":         router.Hex(),
			"wrapped_native": wrappedNative.Hex(),
			"error":          err.Error(),
		})
		return nil, err
	}

	cfg, err := c.Config(ctx)
	if err != nil {
		return nil, err
	}
	return &InitializeResult{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber,
		Config:      *cfg,
	}, nil
}

func (c *Onchain) SwapNativeToToken(ctx context.Context, req SwapRequest) (*SwapExecution, error) {
	signer := c.evmRpc.SignerAddress()
	if req.Caller == (common.Address{}) {
		req.Caller = signer
	}
	if req.Caller != signer {
		return nil, errors.Wrapf(ErrInvalidRequest, "caller must be the signer %s", signer.Hex())
	}
	payment, minimumOutput, err := swapAmounts(req)
	if err != nil {
		return nil, err
	}
	if replay, err := c.beginSwap(ctx, &req, payment, minimumOutput, c.decimals); replay != nil || err != nil {
		return replay, err
	}

	start := time.Now()
	execution, err := c.swap(ctx, req, payment, minimumOutput)
	c.finishSwap(ctx, req.RequestID, start, execution, err)
	if err != nil {
		c.logger.Error("[SwapNativeToToken][swap]", map[string]string{
			"request_id":   req.RequestID,
			"output_asset": req.OutputAsset.Hex(),
			"kind":         errorKind(err),
			"error":        err.Error(),
		})
		return nil, err
	}
	return execution, nil
}

func (c *Onchain) swap(ctx context.Context, req SwapRequest, payment, minimumOutput *uint256.Int) (*SwapExecution, error) {
	if payment.IsZero() {
		return nil, facilitator.ErrInvalidPayment
	}
	if req.OutputAsset == (common.Address{}) {
		return nil, facilitator.ErrInvalidOutputAsset
	}

	receipt, err := c.evmRpc.SwapNativeToToken(ctx, evmrpc.SwapParams{
		OutputAsset:   req.OutputAsset,
		MinimumOutput: toBig(minimumOutput),
		FeeTier:       req.FeeTier,
		PaymentAmount: toBig(payment),
	})
	if err != nil {
		return nil, err
	}

	row := &model.SwapExecution{
		TxHash:        receipt.TxHash.Hex(),
		LogIndex:      receipt.LogIndex,
		BlockNumber:   receipt.BlockNumber,
		Facilitator:   c.evmRpc.FacilitatorAddress().Hex(),
		Caller:        receipt.Caller.Hex(),
		OutputAsset:   receipt.OutputAsset.Hex(),
		AmountIn:      receipt.AmountIn.String(),
		MinimumOutput: receipt.MinimumOutput.String(),
		AmountOut:     receipt.AmountOut.String(),
		ExecutedAt:    time.Now().UTC(),
	}
	// the indexer stores the same log again later; the row is keyed by (tx, log index)
	if _, err := c.store.SwapExecution.Create(c.db.WithContext(context.WithoutCancel(ctx)), row); err != nil {
		c.logger.Error("[SwapNativeToToken][CreateSwapExecution]", map[string]string{
			"tx_hash": row.TxHash,
			"error":   err.Error(),
		})
	}

	execution := executionFrom(req.RequestID, row)
	decimals := c.decimals(ctx, req.OutputAsset)
	execution.MinimumOutput.Decimal = decimals
	execution.AmountOut.Decimal = decimals
	return execution, nil
}

// decimals reads the token metadata through a balance lookup of the signer.
func (c *Onchain) decimals(ctx context.Context, token common.Address) int {
	balance, err := c.evmRpc.TokenBalance(ctx, token, c.evmRpc.SignerAddress())
	if err != nil {
		c.logger.Error("[decimals][TokenBalance]", map[string]string{
			"token": token.Hex(),
			"error": err.Error(),
		})
		return 0
	}
	return int(balance.Decimals)
}

func (c *Onchain) Config(ctx context.Context) (*FacilitatorConfig, error) {
	cfg := &FacilitatorConfig{
		Mode:          c.mode,
		Address:       c.evmRpc.FacilitatorAddress().Hex(),
		Router:        common.Address{}.Hex(),
		WrappedNative: common.Address{}.Hex(),
	}

	router, err := c.evmRpc.Router(ctx)
	if err != nil {
		c.logger.Error("[Config][Router]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}
	wrappedNative, err := c.evmRpc.WrappedNative(ctx)
	if err != nil {
		c.logger.Error("[Config][WrappedNative]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}

	// the proxy exposes no flag; a stored router means initialize succeeded
	cfg.Initialized = router != (common.Address{})
	cfg.Router = router.Hex()
	cfg.WrappedNative = wrappedNative.Hex()
	return cfg, nil
}

func (c *Onchain) Quote(ctx context.Context, outputAsset common.Address, feeTier uint32, amountIn *model.Web3BigInt) (*Quote, error) {
	in, ok := amountIn.Uint256()
	if !ok || in.IsZero() {
		return nil, errors.Wrapf(ErrInvalidRequest, "invalid amount_in %q", amountIn.Value)
	}

	wrappedNative, err := c.evmRpc.WrappedNative(ctx)
	if err != nil {
		return nil, err
	}
	if wrappedNative == (common.Address{}) {
		return nil, facilitator.ErrNotInitialized
	}

	out, err := c.evmRpc.Quote(ctx, wrappedNative, outputAsset, feeTier, in.ToBig())
	if err != nil {
		c.logger.Error("[Quote][evmRpc.Quote]", map[string]string{
			"output_asset": outputAsset.Hex(),
			"fee_tier":     formatFee(feeTier),
			"error":        err.Error(),
		})
		return nil, err
	}

	decimals := 0
	if balance, err := c.evmRpc.TokenBalance(ctx, outputAsset, c.evmRpc.FacilitatorAddress()); err == nil {
		decimals = int(balance.Decimals)
	}
	return &Quote{
		TokenIn:   wrappedNative.Hex(),
		TokenOut:  outputAsset.Hex(),
		FeeTier:   feeTier,
		AmountIn:  model.FromUint256(in, nativeDecimals),
		AmountOut: model.NewWeb3BigInt(out, decimals),
	}, nil
}

// Balances reports the wrapped native token when tokens is empty.
func (c *Onchain) Balances(ctx context.Context, account common.Address, tokens []common.Address) (*Balances, error) {
	if len(tokens) == 0 {
		wrappedNative, err := c.evmRpc.WrappedNative(ctx)
		if err != nil {
			return nil, err
		}
		if wrappedNative != (common.Address{}) {
			tokens = []common.Address{wrappedNative}
		}
	}

	native, err := c.evmRpc.NativeBalance(ctx, account)
	if err != nil {
		c.logger.Error("[Balances][NativeBalance]", map[string]string{
			"account": account.Hex(),
			"error":   err.Error(),
		})
		return nil, err
	}

	balances := &Balances{
		Address: account.Hex(),
		Native:  model.NewWeb3BigInt(native, nativeDecimals),
		Tokens:  make([]TokenBalance, 0, len(tokens)),
	}
	for _, token := range tokens {
		balance, err := c.evmRpc.TokenBalance(ctx, token, account)
		if err != nil {
			c.logger.Error("[Balances][TokenBalance]", map[string]string{
				"account": account.Hex(),
				"token":   token.Hex(),
				"error":   err.Error(),
			})
			return nil, err
		}
		balances.Tokens = append(balances.Tokens, TokenBalance{
			Token:   balance.Token.Hex(),
			Symbol:  balance.Symbol,
			Balance: model.NewWeb3BigInt(balance.Balance, int(balance.Decimals)),
		})
	}
	return balances, nil
}
