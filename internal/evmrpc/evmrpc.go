package evmrpc

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/contracts/erc20"
	"github.com/dwarvesf/swappy/contracts/quoter"
	"github.com/dwarvesf/swappy/contracts/swappy"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
	"github.com/dwarvesf/swappy/internal/utils/vault"
)

// vaultSignerKey is the KV field holding the hex signer key.
const vaultSignerKey = "signer_private_key"

// maxBlockRange bounds a single eth_getLogs request.
const maxBlockRange = 10000

var ErrQuoterNotConfigured = errors.New("quoter address not configured")

type swappyService struct {
	address common.Address
	swappy  *swappy.Swappy
	quoter  *quoter.Quoter
	client  *ethclient.Client
	signer  *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
}

type EvmRPC struct {
	appConfig *config.AppConfig
	logger    *logger.Logger
	service   swappyService
}

func New(appConfig *config.AppConfig, logger *logger.Logger) (IEvmRPC, error) {
	client, err := ethclient.Dial(appConfig.Blockchain.RPCEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "dial rpc endpoint")
	}

	swappyAddress := common.HexToAddress(appConfig.Blockchain.SwappyContractAddr)
	instance, err := swappy.NewSwappy(swappyAddress, client)
	if err != nil {
		return nil, err
	}

	var q *quoter.Quoter
	if appConfig.Blockchain.QuoterContractAddr != "" {
		q, err = quoter.NewQuoter(common.HexToAddress(appConfig.Blockchain.QuoterContractAddr), client)
		if err != nil {
			return nil, err
		}
	}

	key, err := loadSignerKey(appConfig)
	if err != nil {
		logger.Error("[evmrpc.New][loadSignerKey]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}

	return &EvmRPC{
		service: swappyService{
			address: swappyAddress,
			swappy:  instance,
			quoter:  q,
			client:  client,
			signer:  key,
			from:    crypto.PubkeyToAddress(key.PublicKey),
			chainID: big.NewInt(appConfig.Blockchain.ChainID),
		},
		appConfig: appConfig,
		logger:    logger,
	}, nil
}

func loadSignerKey(appConfig *config.AppConfig) (*ecdsa.PrivateKey, error) {
	raw := appConfig.Blockchain.SignerPrivateKey
	if raw == "" {
		vc, err := vault.New(appConfig.Vault)
		if err != nil {
			return nil, errors.Wrap(err, "vault login")
		}
		raw, err = vc.GetKV(vaultSignerKey)
		if err != nil {
			return nil, errors.Wrap(err, "read signer key from vault")
		}
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "parse signer key")
	}
	return key, nil
}

func (b *EvmRPC) Client() *ethclient.Client {
	return b.service.client
}

func (b *EvmRPC) SignerAddress() common.Address {
	return b.service.from
}

func (b *EvmRPC) FacilitatorAddress() common.Address {
	return b.service.address
}

func (b *EvmRPC) BlockNumber(ctx context.Context) (uint64, error) {
	return b.service.client.BlockNumber(ctx)
}

func (b *EvmRPC) transactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(b.service.signer, b.service.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value
	return opts, nil
}

// Initialize sends initialize(router, wrappedNative) and waits for it to be mined.
func (b *EvmRPC) Initialize(ctx context.Context, router, wrappedNative common.Address) (*TxReceipt, error) {
	opts, err := b.transactOpts(ctx, nil)
	if err != nil {
		return nil, err
	}

	tx, err := b.service.swappy.Initialize(opts, router, wrappedNative)
	if err != nil {
		b.logger.Error("[Initialize][SwappyInstance]", map[string]string{
			"router":         router.Hex(),
			"wrapped_native": wrappedNative.Hex(),
			"error":          err.Error(),
		})
		return nil, classifyRevert(err)
	}

	receipt, err := b.waitMined(ctx, tx)
	if err != nil {
		return nil, err
	}
	return &TxReceipt{TxHash: receipt.TxHash, BlockNumber: receipt.BlockNumber.Uint64()}, nil
}

// SwapNativeToToken sends swapEtherToToken with PaymentAmount attached and
// returns the amounts from the SwapExecuted log of the mined transaction.
func (b *EvmRPC) SwapNativeToToken(ctx context.Context, params SwapParams) (*SwapReceipt, error) {
	if params.PaymentAmount == nil || params.PaymentAmount.Sign() <= 0 {
		return nil, facilitator.ErrInvalidPayment
	}
	minOut := params.MinimumOutput
	if minOut == nil {
		minOut = new(big.Int)
	}

	opts, err := b.transactOpts(ctx, params.PaymentAmount)
	if err != nil {
		return nil, err
	}

	b.logger.Info("[SwapNativeToToken][Submit]", map[string]string{
		"output_asset":   params.OutputAsset.Hex(),
		"minimum_output": minOut.String(),
		"fee_tier":       fmt.Sprintf("%d", params.FeeTier),
		"payment_amount": params.PaymentAmount.String(),
	})

	tx, err := b.service.swappy.SwapEtherToToken(opts, params.OutputAsset, minOut, big.NewInt(int64(params.FeeTier)))
	if err != nil {
		b.logger.Error("[SwapNativeToToken][SwappyInstance]", map[string]string{
			"error": err.Error(),
		})
		return nil, classifyRevert(err)
	}

	receipt, err := b.waitMined(ctx, tx)
	if err != nil {
		return nil, err
	}

	for _, log := range receipt.Logs {
		if !b.isSwapExecuted(log) {
			continue
		}
		event, err := b.service.swappy.ParseSwapExecuted(*log)
		if err != nil {
			return nil, errors.Wrap(err, "decode SwapExecuted")
		}
		return &SwapReceipt{
			TxReceipt:     TxReceipt{TxHash: receipt.TxHash, BlockNumber: receipt.BlockNumber.Uint64()},
			LogIndex:      log.Index,
			Caller:        b.service.from,
			OutputAsset:   event.Token,
			AmountIn:      event.AmountIn,
			MinimumOutput: event.AmountOutMin,
			AmountOut:     event.AmountOut,
		}, nil
	}
	return nil, errors.Errorf("transaction %s emitted no SwapExecuted log", receipt.TxHash.Hex())
}

func (b *EvmRPC) isSwapExecuted(log *types.Log) bool {
	return log.Address == b.service.address &&
		len(log.Topics) > 0 &&
		log.Topics[0] == facilitator.SwapExecutedTopic()
}

func (b *EvmRPC) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, b.service.client, tx)
	if err != nil {
		b.logger.Error("[waitMined][WaitMined]", map[string]string{
			"tx_hash": tx.Hash().Hex(),
			"error":   err.Error(),
		})
		return nil, err
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		return receipt, nil
	}

	err = b.replay(ctx, tx, receipt.BlockNumber)
	b.logger.Error("[waitMined][Reverted]", map[string]string{
		"tx_hash": tx.Hash().Hex(),
		"error":   err.Error(),
	})
	return nil, err
}

// replay re-executes a reverted transaction against its parent block to
// recover the revert reason.
func (b *EvmRPC) replay(ctx context.Context, tx *types.Transaction, blockNumber *big.Int) error {
	msg := ethereum.CallMsg{
		From:  b.service.from,
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	parent := new(big.Int).Sub(blockNumber, big.NewInt(1))
	if _, err := b.service.client.CallContract(ctx, msg, parent); err != nil {
		return classifyRevert(err)
	}
	return errors.Wrapf(ErrTransactionReverted, "tx %s", tx.Hash().Hex())
}

func (b *EvmRPC) Router(ctx context.Context) (common.Address, error) {
	return b.service.swappy.SwapRouter(&bind.CallOpts{Context: ctx})
}

func (b *EvmRPC) WrappedNative(ctx context.Context) (common.Address, error) {
	return b.service.swappy.Weth(&bind.CallOpts{Context: ctx})
}

// Quote simulates quoteExactInputSingle with no price limit.
func (b *EvmRPC) Quote(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error) {
	if b.service.quoter == nil {
		return nil, ErrQuoterNotConfigured
	}

	var out []interface{}
	raw := &quoter.QuoterCallerRaw{Contract: &b.service.quoter.QuoterCaller}
	err := raw.Call(&bind.CallOpts{Context: ctx}, &out, "quoteExactInputSingle",
		tokenIn, tokenOut, big.NewInt(int64(fee)), amountIn, new(big.Int))
	if err != nil {
		return nil, classifyRevert(err)
	}
	if len(out) == 0 {
		return nil, errors.New("quoter returned no output")
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (b *EvmRPC) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return b.service.client.BalanceAt(ctx, account, nil)
}

func (b *EvmRPC) TokenBalance(ctx context.Context, token, account common.Address) (*TokenBalance, error) {
	instance, err := erc20.NewERC20Caller(token, b.service.client)
	if err != nil {
		return nil, err
	}
	opts := &bind.CallOpts{Context: ctx}

	balance, err := instance.BalanceOf(opts, account)
	if err != nil {
		return nil, err
	}
	symbol, err := instance.Symbol(opts)
	if err != nil {
		return nil, err
	}
	decimals, err := instance.Decimals(opts)
	if err != nil {
		return nil, err
	}
	return &TokenBalance{Token: token, Symbol: symbol, Decimals: decimals, Balance: balance}, nil
}

func (b *EvmRPC) SwapExecutions(ctx context.Context, fromBlock uint64) ([]model.SwapExecution, uint64, error) {
	latestBlock, err := b.service.client.BlockNumber(ctx)
	if err != nil {
		b.logger.Error("[SwapExecutions][BlockNumber]", map[string]string{
			"error": err.Error(),
		})
		return nil, 0, err
	}
	if fromBlock > latestBlock {
		return nil, latestBlock, nil
	}

	signer := types.LatestSignerForChainID(b.service.chainID)
	headers := make(map[uint64]*types.Header)

	var executions []model.SwapExecution
	for currentStart := fromBlock; currentStart <= latestBlock; currentStart += maxBlockRange {
		currentEnd := currentStart + maxBlockRange - 1
		if currentEnd > latestBlock {
			currentEnd = latestBlock
		}

		opts := &bind.FilterOpts{
			Start:   currentStart,
			End:     &currentEnd,
			Context: ctx,
		}
		iterator, err := b.service.swappy.FilterSwapExecuted(opts, nil)
		if err != nil {
			b.logger.Error("[SwapExecutions][FilterSwapExecuted]", map[string]string{
				"error":      err.Error(),
				"startBlock": fmt.Sprintf("%d", currentStart),
				"endBlock":   fmt.Sprintf("%d", currentEnd),
			})
			return nil, 0, err
		}

		for iterator.Next() {
			event := iterator.Event
			execution := model.SwapExecution{
				TxHash:        event.Raw.TxHash.Hex(),
				LogIndex:      event.Raw.Index,
				BlockNumber:   event.Raw.BlockNumber,
				Facilitator:   b.service.address.Hex(),
				OutputAsset:   event.Token.Hex(),
				AmountIn:      event.AmountIn.String(),
				MinimumOutput: event.AmountOutMin.String(),
				AmountOut:     event.AmountOut.String(),
			}

			tx, _, err := b.service.client.TransactionByHash(ctx, event.Raw.TxHash)
			if err == nil {
				if from, err := types.Sender(signer, tx); err == nil {
					execution.Caller = from.Hex()
				}
			} else {
				b.logger.Error("[SwapExecutions][TransactionByHash] cannot get sender", map[string]string{
					"tx_hash": event.Raw.TxHash.Hex(),
					"error":   err.Error(),
				})
			}

			header, ok := headers[event.Raw.BlockNumber]
			if !ok {
				header, err = b.service.client.HeaderByNumber(ctx, new(big.Int).SetUint64(event.Raw.BlockNumber))
				if err != nil {
					b.logger.Error("[SwapExecutions][HeaderByNumber] cannot get block data", map[string]string{
						"error": err.Error(),
					})
				}
				headers[event.Raw.BlockNumber] = header
			}
			if header != nil {
				execution.ExecutedAt = blockTime(header)
			}

			executions = append(executions, execution)
		}
		if err := iterator.Error(); err != nil {
			iterator.Close()
			return nil, 0, err
		}
		iterator.Close()
	}

	return executions, latestBlock, nil
}
