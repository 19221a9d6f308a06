package controller

import (
	"context"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/chain"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/simulation"
	"github.com/dwarvesf/swappy/internal/store"
	"github.com/dwarvesf/swappy/internal/token"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

// Simulated drives the in-process facilitator deployed on a simulated chain.
type Simulated struct {
	base
	env *simulation.Environment
}

func NewSimulated(env *simulation.Environment, db *gorm.DB, store *store.Store, config *config.AppConfig, logger *logger.Logger, metrics Metrics) IController {
	return &Simulated{
		base: base{
			mode:    config.Facilitator.Mode,
			db:      db,
			store:   store,
			config:  config,
			logger:  logger,
			metrics: metrics,
		},
		env: env,
	}
}

// Initialize is sent from the zero address; the facilitator does not restrict
// who initializes it.
func (c *Simulated) Initialize(ctx context.Context, router, wrappedNative common.Address) (*InitializeResult, error) {
	f := c.env.Facilitator
	receipt, err := c.env.Chain.Transact(ctx, chain.Message{To: f.Address()}, func(call *chain.Call) error {
		return f.Initialize(call, router, wrappedNative)
	})
	c.metrics.RecordInitialization(c.mode, outcomeOf(err))
	if err != nil {
		c.logger.Error("[Initialize][Transact]", map[string]string{
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
	c.logger.Info("[Initialize] facilitator initialized", map[string]string{
		"tx_hash":        receipt.TxHash.Hex(),
		"router":         cfg.Router,
		"wrapped_native": cfg.WrappedNative,
	})
	return &InitializeResult{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber,
		Config:      *cfg,
	}, nil
}

func (c *Simulated) SwapNativeToToken(ctx context.Context, req SwapRequest) (*SwapExecution, error) {
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
			"caller":       req.Caller.Hex(),
			"output_asset": req.OutputAsset.Hex(),
			"kind":         errorKind(err),
			"error":        err.Error(),
		})
		return nil, err
	}
	return execution, nil
}

func (c *Simulated) swap(ctx context.Context, req SwapRequest, payment, minimumOutput *uint256.Int) (*SwapExecution, error) {
	f := c.env.Facilitator
	var result *facilitator.SwapResult
	msg := chain.Message{From: req.Caller, To: f.Address(), Value: payment}
	receipt, err := c.env.Chain.Transact(ctx, msg, func(call *chain.Call) error {
		var err error
		result, err = f.SwapNativeToToken(call, facilitator.SwapParams{
			OutputAsset:   req.OutputAsset,
			MinimumOutput: minimumOutput,
			FeeTier:       req.FeeTier,
			PaymentAmount: payment,
		})
		return err
	})
	if errors.Is(err, chain.ErrInsufficientBalance) {
		return nil, errors.Wrapf(facilitator.ErrInvalidPayment, "caller %s cannot cover %s", req.Caller.Hex(), payment.Dec())
	}
	if err != nil {
		return nil, err
	}

	decimals := c.decimals(ctx, req.OutputAsset)
	return &SwapExecution{
		RequestID:     req.RequestID,
		TxHash:        receipt.TxHash.Hex(),
		BlockNumber:   receipt.BlockNumber,
		Caller:        req.Caller.Hex(),
		OutputAsset:   result.OutputAsset.Hex(),
		AmountIn:      model.FromUint256(result.AmountIn, nativeDecimals),
		MinimumOutput: model.FromUint256(result.MinimumOutput, decimals),
		AmountOut:     model.FromUint256(result.AmountOut, decimals),
	}, nil
}

func (c *Simulated) Config(ctx context.Context) (*FacilitatorConfig, error) {
	var cfg facilitator.Config
	err := c.env.Chain.View(ctx, func(call *chain.Call) error {
		cfg = c.env.Facilitator.Config(call.State)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &FacilitatorConfig{
		Mode:          c.mode,
		Address:       c.env.Facilitator.Address().Hex(),
		Initialized:   cfg.Initialized,
		Router:        cfg.Router.Hex(),
		WrappedNative: cfg.WrappedNative.Hex(),
	}, nil
}

// Quote prices against the configured router and wrapped native token, or the
// genesis ones before initialization.
func (c *Simulated) Quote(ctx context.Context, outputAsset common.Address, feeTier uint32, amountIn *model.Web3BigInt) (*Quote, error) {
	in, ok := amountIn.Uint256()
	if !ok {
		return nil, errors.Wrapf(ErrInvalidRequest, "invalid amount_in %q", amountIn.Value)
	}

	tokenIn, routerAddr := c.env.WETH.Address(), c.env.Router.Address()
	var out *uint256.Int
	err := c.env.Chain.View(ctx, func(call *chain.Call) error {
		if cfg := c.env.Facilitator.Config(call.State); cfg.Initialized {
			tokenIn, routerAddr = cfg.WrappedNative, cfg.Router
		}
		if routerAddr != c.env.Router.Address() {
			return errors.Wrapf(facilitator.ErrRouterFailure, "router %s has no quoter", routerAddr.Hex())
		}
		var err error
		out, err = c.env.Router.QuoteExactInputSingle(call.State, tokenIn, outputAsset, feeTier, in)
		return err
	})
	if err != nil {
		c.logger.Error("[Quote][QuoteExactInputSingle]", map[string]string{
			"output_asset": outputAsset.Hex(),
			"fee_tier":     formatFee(feeTier),
			"error":        err.Error(),
		})
		return nil, err
	}

	return &Quote{
		TokenIn:   tokenIn.Hex(),
		TokenOut:  outputAsset.Hex(),
		FeeTier:   feeTier,
		AmountIn:  model.FromUint256(in, nativeDecimals),
		AmountOut: model.FromUint256(out, c.decimals(ctx, outputAsset)),
	}, nil
}

// Balances reports every genesis token when tokens is empty.
func (c *Simulated) Balances(ctx context.Context, account common.Address, tokens []common.Address) (*Balances, error) {
	erc20s, err := c.tokens(tokens)
	if err != nil {
		return nil, err
	}

	balances := &Balances{Address: account.Hex(), Tokens: make([]TokenBalance, 0, len(erc20s))}
	err = c.env.Chain.View(ctx, func(call *chain.Call) error {
		balances.Native = model.FromUint256(call.State.GetBalance(account), nativeDecimals)
		for _, t := range erc20s {
			balances.Tokens = append(balances.Tokens, TokenBalance{
				Token:   t.Address().Hex(),
				Symbol:  t.Symbol(),
				Balance: model.FromUint256(t.BalanceOf(call.State, account), int(t.Decimals())),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}

func (c *Simulated) tokens(addrs []common.Address) ([]*token.ERC20, error) {
	if len(addrs) == 0 {
		listed := make([]*token.ERC20, 0, len(c.env.Tokens))
		for _, t := range c.env.Tokens {
			listed = append(listed, t)
		}
		sort.Slice(listed, func(i, j int) bool { return listed[i].Symbol() < listed[j].Symbol() })
		return append([]*token.ERC20{c.env.WETH.ERC20}, listed...), nil
	}

	out := make([]*token.ERC20, 0, len(addrs))
	for _, addr := range addrs {
		t, ok := c.env.Token(addr)
		if !ok {
			return nil, errors.Wrap(ErrUnknownToken, addr.Hex())
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *Simulated) decimals(_ context.Context, addr common.Address) int {
	if t, ok := c.env.Token(addr); ok {
		return int(t.Decimals())
	}
	return 0
}
