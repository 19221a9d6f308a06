package monitoring

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/swappy/internal/evmrpc"
	"github.com/dwarvesf/swappy/internal/evmrpc/mocks"
	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/types/environments"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

var (
	usdt = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	weth = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
)

func setupTestLogger() *logger.Logger {
	return logger.New(environments.Test)
}

var testBreakerConfig = CircuitBreakerConfig{
	MaxRequests:                 1,
	Interval:                    30 * time.Second,
	Timeout:                     60 * time.Second,
	ConsecutiveFailureThreshold: 3,
}

func newTestBreaker(t *testing.T, rpc evmrpc.IEvmRPC) (*CircuitBreakerEvmRPC, *prometheus.Registry) {
	t.Helper()
	metrics := NewExternalAPIMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)
	return NewCircuitBreakerEvmRPC(rpc, testBreakerConfig, metrics, setupTestLogger()), registry
}

func TestCircuitBreaker_InitialState(t *testing.T) {
	cb, registry := newTestBreaker(t, &mocks.EvmRPC{})

	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, float64(gobreaker.StateClosed), gaugeValue(t, registry, "swappy_circuit_breaker_state"))
}

func TestCircuitBreaker_PassesResults(t *testing.T) {
	rpc := &mocks.EvmRPC{}
	amountIn := big.NewInt(1e18)
	rpc.On("Quote", mock.Anything, weth, usdt, uint32(500), amountIn).Return(big.NewInt(1597603195), nil)
	rpc.On("SwapExecutions", mock.Anything, uint64(10)).Return(nil, uint64(42), nil)

	cb, registry := newTestBreaker(t, rpc)

	out, err := cb.Quote(context.Background(), weth, usdt, 500, amountIn)
	require.NoError(t, err)
	assert.Equal(t, "1597603195", out.String())

	executions, head, err := cb.SwapExecutions(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, executions)
	assert.Equal(t, uint64(42), head)

	assert.Equal(t, float64(2), counterValue(t, registry, "swappy_external_api_calls_total",
		map[string]string{"api_name": "evm_rpc", "status": "success"}))
	rpc.AssertExpectations(t)
}

func TestCircuitBreaker_ClosedToOpen(t *testing.T) {
	rpc := &mocks.EvmRPC{}
	rpc.On("BlockNumber", mock.Anything).Return(uint64(0), errors.New("dial tcp: connection refused"))

	cb, registry := newTestBreaker(t, rpc)

	for i := 0; i < testBreakerConfig.ConsecutiveFailureThreshold; i++ {
		_, err := cb.BlockNumber(context.Background())
		assert.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, cb.State())
	assert.Equal(t, float64(gobreaker.StateOpen), gaugeValue(t, registry, "swappy_circuit_breaker_state"))
	assert.Equal(t, float64(3), counterValue(t, registry, "swappy_external_api_calls_total",
		map[string]string{"api_name": "evm_rpc", "status": "error"}))

	_, err := cb.BlockNumber(context.Background())
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	rpc.AssertNumberOfCalls(t, "BlockNumber", 3)
}

func TestCircuitBreaker_RevertsDoNotTrip(t *testing.T) {
	rpc := &mocks.EvmRPC{}
	rpc.On("SwapNativeToToken", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(facilitator.ErrSlippageExceeded, "execution reverted: Too little received"))

	cb, registry := newTestBreaker(t, rpc)

	for i := 0; i < 5; i++ {
		_, err := cb.SwapNativeToToken(context.Background(), evmrpc.SwapParams{OutputAsset: usdt, PaymentAmount: big.NewInt(1)})
		assert.ErrorIs(t, err, facilitator.ErrSlippageExceeded)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, float64(5), counterValue(t, registry, "swappy_external_api_calls_total",
		map[string]string{"api_name": "evm_rpc", "status": "reverted"}))
}

func TestCircuitBreaker_Timeout(t *testing.T) {
	rpc := &mocks.EvmRPC{}
	rpc.On("Router", mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return(common.Address{}, context.DeadlineExceeded)

	metrics := NewExternalAPIMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)
	timeouts := DefaultTimeoutConfig
	timeouts.RequestTimeout = 20 * time.Millisecond
	cb := NewCircuitBreakerEvmRPCWithTimeout(rpc, testBreakerConfig, timeouts, metrics, setupTestLogger())

	_, err := cb.Router(context.Background())
	assert.ErrorContains(t, err, "timeout")
	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_external_api_timeouts_total",
		map[string]string{"api_name": "evm_rpc", "timeout_type": "router"}))
}

func TestCircuitBreaker_InvalidConfigFallsBack(t *testing.T) {
	rpc := &mocks.EvmRPC{}
	rpc.On("BlockNumber", mock.Anything).Return(uint64(0), errors.New("connection reset"))

	cb := NewCircuitBreakerEvmRPC(rpc, CircuitBreakerConfig{}, NewExternalAPIMetrics(), setupTestLogger())

	defaults := CircuitBreakerConfigs["evm_rpc"]
	for i := 0; i < defaults.ConsecutiveFailureThreshold-1; i++ {
		_, _ = cb.BlockNumber(context.Background())
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	_, _ = cb.BlockNumber(context.Background())
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err  error
		want APIErrorType
	}{
		{errors.New("request timeout after 5s"), ErrorTypeTimeout},
		{errors.New("network unreachable"), ErrorTypeNetworkError},
		{errors.New("502 Bad Gateway"), ErrorTypeServerError},
		{errors.New("429 Too Many Requests"), ErrorTypeClientError},
		{errors.New("execution reverted"), ErrorTypeReverted},
		{errors.New("unexpected"), ErrorTypeUnknown},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyError(tt.err), "%v", tt.err)
	}
}

func TestCircuitBreakerConfig_Validation(t *testing.T) {
	valid := CircuitBreakerConfigs["evm_rpc"]
	assert.NoError(t, validateCircuitBreakerConfig(valid))

	zeroRequests := valid
	zeroRequests.MaxRequests = 0
	assert.Error(t, validateCircuitBreakerConfig(zeroRequests))

	zeroThreshold := valid
	zeroThreshold.ConsecutiveFailureThreshold = 0
	assert.Error(t, validateCircuitBreakerConfig(zeroThreshold))

	negativeTimeout := valid
	negativeTimeout.Timeout = -time.Second
	assert.Error(t, validateCircuitBreakerConfig(negativeTimeout))
}

func getLabelValue(labels []*dto.LabelPair, name string) string {
	for _, label := range labels {
		if label.GetName() == name {
			return label.GetValue()
		}
	}
	return ""
}

func findMetric(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			matches := true
			for k, v := range labels {
				if getLabelValue(metric.GetLabel(), k) != v {
					matches = false
					break
				}
			}
			if matches {
				return metric
			}
		}
	}
	return nil
}

func gaugeValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()
	metric := findMetric(t, registry, name, nil)
	require.NotNil(t, metric, "metric %s not found", name)
	return metric.GetGauge().GetValue()
}

func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	metric := findMetric(t, registry, name, labels)
	require.NotNil(t, metric, "metric %s %v not found", name, labels)
	return metric.GetCounter().GetValue()
}
