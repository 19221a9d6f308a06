package monitoring

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"github.com/dwarvesf/swappy/internal/evmrpc"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

const evmRPCService = "evm_rpc"

// ErrServiceUnavailable is returned while the breaker is open or probing.
var ErrServiceUnavailable = errors.New("evm rpc unavailable")

// CircuitBreakerEvmRPC wraps evmrpc.IEvmRPC with circuit breaker functionality.
// Reverts that map to facilitator errors are business outcomes and never trip
// the breaker.
type CircuitBreakerEvmRPC struct {
	wrapped        evmrpc.IEvmRPC
	circuitBreaker *gobreaker.CircuitBreaker
	metrics        *ExternalAPIMetrics
	logger         *logger.Logger
	timeoutConfig  TimeoutConfig
}

var _ evmrpc.IEvmRPC = (*CircuitBreakerEvmRPC)(nil)

func NewCircuitBreakerEvmRPC(wrapped evmrpc.IEvmRPC, config CircuitBreakerConfig, metrics *ExternalAPIMetrics, logger *logger.Logger) *CircuitBreakerEvmRPC {
	return NewCircuitBreakerEvmRPCWithTimeout(wrapped, config, DefaultTimeoutConfig, metrics, logger)
}

// NewCircuitBreakerEvmRPCWithTimeout falls back to the default breaker settings
// when config is invalid.
func NewCircuitBreakerEvmRPCWithTimeout(wrapped evmrpc.IEvmRPC, config CircuitBreakerConfig, timeoutConfig TimeoutConfig, metrics *ExternalAPIMetrics, logger *logger.Logger) *CircuitBreakerEvmRPC {
	if err := validateCircuitBreakerConfig(config); err != nil {
		logger.Error("[NewCircuitBreakerEvmRPC][validateCircuitBreakerConfig]", map[string]string{
			"error": err.Error(),
		})
		config = CircuitBreakerConfigs[evmRPCService]
	}

	cb := &CircuitBreakerEvmRPC{
		wrapped:       wrapped,
		metrics:       metrics,
		logger:        logger,
		timeoutConfig: timeoutConfig,
	}

	settings := gobreaker.Settings{
		Name:        evmRPCService,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.ConsecutiveFailureThreshold)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || facilitator.IsFacilitatorError(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("[CircuitBreakerEvmRPC] state change", map[string]string{
				"service": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			metrics.UpdateCircuitBreakerState(evmRPCService, to)
		},
	}

	cb.circuitBreaker = gobreaker.NewCircuitBreaker(settings)
	metrics.UpdateCircuitBreakerState(evmRPCService, gobreaker.StateClosed)
	return cb
}

func (cb *CircuitBreakerEvmRPC) State() gobreaker.State {
	return cb.circuitBreaker.State()
}

func (cb *CircuitBreakerEvmRPC) timeoutFor(operation string) time.Duration {
	switch operation {
	case "health_check":
		return cb.timeoutConfig.HealthCheckTimeout
	case "initialize", "swap":
		return cb.timeoutConfig.TransactionTimeout
	default:
		return cb.timeoutConfig.RequestTimeout
	}
}

// executeWithTimeout runs fn under the operation's deadline and records the
// call duration and status.
func (cb *CircuitBreakerEvmRPC) executeWithTimeout(ctx context.Context, operation string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, cb.timeoutFor(operation))
	defer cancel()

	result, err := fn(ctx)
	duration := time.Since(start).Seconds()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		cb.metrics.RecordTimeout(evmRPCService, operation)
		cb.logError(operation, duration, ctx.Err())
		return nil, fmt.Errorf("timeout: %v", ctx.Err())
	}

	status := "success"
	if err != nil {
		status = "error"
		if facilitator.IsFacilitatorError(err) {
			status = "reverted"
		} else {
			cb.logError(operation, duration, err)
		}
	}
	cb.metrics.RecordAPICall(evmRPCService, operation, status, duration)
	return result, err
}

func execute[T any](ctx context.Context, cb *CircuitBreakerEvmRPC, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	result, err := cb.circuitBreaker.Execute(func() (interface{}, error) {
		return cb.executeWithTimeout(ctx, operation, func(ctx context.Context) (interface{}, error) {
			v, err := fn(ctx)
			return v, err
		})
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, errors.Wrap(ErrServiceUnavailable, err.Error())
	}
	if err != nil {
		return zero, err
	}
	v, _ := result.(T)
	return v, nil
}

func (cb *CircuitBreakerEvmRPC) Client() *ethclient.Client {
	return cb.wrapped.Client()
}

func (cb *CircuitBreakerEvmRPC) SignerAddress() common.Address {
	return cb.wrapped.SignerAddress()
}

func (cb *CircuitBreakerEvmRPC) FacilitatorAddress() common.Address {
	return cb.wrapped.FacilitatorAddress()
}

func (cb *CircuitBreakerEvmRPC) BlockNumber(ctx context.Context) (uint64, error) {
	return execute(ctx, cb, "block_number", cb.wrapped.BlockNumber)
}

// HealthCheck probes the node through the breaker with the short health timeout.
func (cb *CircuitBreakerEvmRPC) HealthCheck(ctx context.Context) (uint64, error) {
	return execute(ctx, cb, "health_check", cb.wrapped.BlockNumber)
}

func (cb *CircuitBreakerEvmRPC) Initialize(ctx context.Context, router, wrappedNative common.Address) (*evmrpc.TxReceipt, error) {
	return execute(ctx, cb, "initialize", func(ctx context.Context) (*evmrpc.TxReceipt, error) {
		return cb.wrapped.Initialize(ctx, router, wrappedNative)
	})
}

func (cb *CircuitBreakerEvmRPC) SwapNativeToToken(ctx context.Context, params evmrpc.SwapParams) (*evmrpc.SwapReceipt, error) {
	return execute(ctx, cb, "swap", func(ctx context.Context) (*evmrpc.SwapReceipt, error) {
		return cb.wrapped.SwapNativeToToken(ctx, params)
	})
}

func (cb *CircuitBreakerEvmRPC) Router(ctx context.Context) (common.Address, error) {
	return execute(ctx, cb, "router", cb.wrapped.Router)
}

func (cb *CircuitBreakerEvmRPC) WrappedNative(ctx context.Context) (common.Address, error) {
	return execute(ctx, cb, "wrapped_native", cb.wrapped.WrappedNative)
}

func (cb *CircuitBreakerEvmRPC) Quote(ctx context.Context, tokenIn, tokenOut common.Address, fee uint32, amountIn *big.Int) (*big.Int, error) {
	return execute(ctx, cb, "quote", func(ctx context.Context) (*big.Int, error) {
		return cb.wrapped.Quote(ctx, tokenIn, tokenOut, fee, amountIn)
	})
}

func (cb *CircuitBreakerEvmRPC) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	return execute(ctx, cb, "native_balance", func(ctx context.Context) (*big.Int, error) {
		return cb.wrapped.NativeBalance(ctx, account)
	})
}

func (cb *CircuitBreakerEvmRPC) TokenBalance(ctx context.Context, token, account common.Address) (*evmrpc.TokenBalance, error) {
	return execute(ctx, cb, "token_balance", func(ctx context.Context) (*evmrpc.TokenBalance, error) {
		return cb.wrapped.TokenBalance(ctx, token, account)
	})
}

type swapExecutionsResult struct {
	executions []model.SwapExecution
	head       uint64
}

func (cb *CircuitBreakerEvmRPC) SwapExecutions(ctx context.Context, fromBlock uint64) ([]model.SwapExecution, uint64, error) {
	result, err := execute(ctx, cb, "swap_executions", func(ctx context.Context) (swapExecutionsResult, error) {
		executions, head, err := cb.wrapped.SwapExecutions(ctx, fromBlock)
		return swapExecutionsResult{executions: executions, head: head}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return result.executions, result.head, nil
}

func (cb *CircuitBreakerEvmRPC) logError(operation string, duration float64, err error) {
	cb.logger.Error("[CircuitBreakerEvmRPC] external API call failed", map[string]string{
		"service":    evmRPCService,
		"operation":  operation,
		"duration":   strconv.FormatFloat(duration, 'f', 3, 64),
		"error":      err.Error(),
		"error_type": string(classifyError(err)),
		"cb_state":   cb.circuitBreaker.State().String(),
	})
}

// classifyError classifies errors for metrics and logging
func classifyError(err error) APIErrorType {
	if err == nil {
		return ""
	}

	errMsg := strings.ToLower(err.Error())
	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(errMsg, s) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("timeout", "deadline exceeded", "context canceled"):
		return ErrorTypeTimeout
	case contains("network", "connection", "unreachable", "dns", "eof"):
		return ErrorTypeNetworkError
	case contains("500", "502", "503", "504", "internal server error", "bad gateway", "service unavailable"):
		return ErrorTypeServerError
	case contains("400", "401", "403", "404", "429", "bad request", "unauthorized", "forbidden", "not found", "rate limit"):
		return ErrorTypeClientError
	case contains("execution reverted"):
		return ErrorTypeReverted
	default:
		return ErrorTypeUnknown
	}
}

func validateCircuitBreakerConfig(config CircuitBreakerConfig) error {
	if config.MaxRequests == 0 {
		return fmt.Errorf("max_requests must be greater than 0")
	}
	if config.ConsecutiveFailureThreshold <= 0 {
		return fmt.Errorf("consecutive_failure_threshold must be greater than 0")
	}
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	if config.Interval < 0 {
		return fmt.Errorf("interval must be non-negative")
	}
	return nil
}
