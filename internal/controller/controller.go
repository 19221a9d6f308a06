package controller

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dwarvesf/swappy/internal/facilitator"
	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/store"
	"github.com/dwarvesf/swappy/internal/utils/config"
	"github.com/dwarvesf/swappy/internal/utils/logger"
)

const nativeDecimals = 18

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrDuplicateRequest = errors.New("duplicate swap request")
	ErrUnknownToken     = errors.New("unknown token")
)

// base holds what both execution modes share: swap request bookkeeping, the
// execution log and metrics.
type base struct {
	mode    string
	db      *gorm.DB
	store   *store.Store
	config  *config.AppConfig
	logger  *logger.Logger
	metrics Metrics
}

func (b *base) ListExecutions(ctx context.Context, filter model.SwapExecutionFilter) (*ExecutionList, error) {
	executions, total, err := b.store.SwapExecution.List(b.db.WithContext(ctx), filter)
	if err != nil {
		b.logger.Error("[ListExecutions][List]", map[string]string{
			"error": err.Error(),
		})
		return nil, err
	}
	if executions == nil {
		executions = []model.SwapExecution{}
	}
	return &ExecutionList{Executions: executions, Total: total}, nil
}

// swapAmounts validates the decimal amounts of req. Zero payments are left to
// the facilitator, which rejects them as an invalid payment.
func swapAmounts(req SwapRequest) (payment, minimumOutput *uint256.Int, err error) {
	if req.PaymentAmount == nil {
		return nil, nil, pkgerrors.Wrap(ErrInvalidRequest, "payment_amount is required")
	}
	payment, ok := req.PaymentAmount.Uint256()
	if !ok {
		return nil, nil, pkgerrors.Wrapf(ErrInvalidRequest, "invalid payment_amount %q", req.PaymentAmount.Value)
	}
	minimumOutput = new(uint256.Int)
	if req.MinimumOutput != nil && req.MinimumOutput.Value != "" {
		minimumOutput, ok = req.MinimumOutput.Uint256()
		if !ok {
			return nil, nil, pkgerrors.Wrapf(ErrInvalidRequest, "invalid minimum_output %q", req.MinimumOutput.Value)
		}
	}
	return payment, minimumOutput, nil
}

// decimalsFunc resolves the decimals of an output token, 0 when unknown.
type decimalsFunc func(ctx context.Context, token common.Address) int

// beginSwap records req as pending. Replaying the id of a completed request
// with the same parameters returns its execution instead of swapping again.
func (b *base) beginSwap(ctx context.Context, req *SwapRequest, payment, minimumOutput *uint256.Int, decimals decimalsFunc) (*SwapExecution, error) {
	db := b.db.WithContext(ctx)
	row := &model.SwapRequest{
		RequestID:     req.RequestID,
		Caller:        req.Caller.Hex(),
		OutputAsset:   req.OutputAsset.Hex(),
		MinimumOutput: minimumOutput.Dec(),
		FeeTier:       req.FeeTier,
		PaymentAmount: payment.Dec(),
		Status:        model.SwapRequestStatusPending,
	}

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
		row.RequestID = req.RequestID
	} else if replay, err := b.replay(ctx, db, row, decimals); replay != nil || err != nil {
		return replay, err
	}

	_, err := b.store.SwapRequest.Create(db, row)
	if err != nil {
		// lost a race against a request with the same id
		if replay, replayErr := b.replay(ctx, db, row, decimals); replay != nil || replayErr != nil {
			return replay, replayErr
		}
		b.logger.Error("[SwapNativeToToken][CreateSwapRequest]", map[string]string{
			"request_id": req.RequestID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return nil, nil
}

func (b *base) replay(ctx context.Context, db *gorm.DB, req *model.SwapRequest, decimals decimalsFunc) (*SwapExecution, error) {
	requestID := req.RequestID
	existing, err := b.store.SwapRequest.GetByRequestID(db, requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sameSwap(existing, req) {
		return nil, pkgerrors.Wrapf(ErrDuplicateRequest, "request %s was submitted with different parameters", requestID)
	}
	if existing.Status != model.SwapRequestStatusCompleted {
		return nil, pkgerrors.Wrapf(ErrDuplicateRequest, "request %s is %s", requestID, existing.Status)
	}

	execution, err := b.store.SwapExecution.GetByTransactionHash(db, existing.TxHash)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "load execution of request %s", requestID)
	}
	out := executionFrom(requestID, execution)
	outputDecimals := decimals(ctx, common.HexToAddress(execution.OutputAsset))
	out.MinimumOutput.Decimal = outputDecimals
	out.AmountOut.Decimal = outputDecimals
	return out, nil
}

// sameSwap compares normalized request rows, ignoring their bookkeeping.
func sameSwap(a, b *model.SwapRequest) bool {
	return a.Caller == b.Caller &&
		a.OutputAsset == b.OutputAsset &&
		a.FeeTier == b.FeeTier &&
		a.PaymentAmount == b.PaymentAmount &&
		a.MinimumOutput == b.MinimumOutput
}

// finishSwap stores the outcome of a swap request. Bookkeeping failures are
// logged and never change the outcome reported to the caller.
func (b *base) finishSwap(ctx context.Context, requestID string, start time.Time, execution *SwapExecution, swapErr error) {
	b.metrics.RecordSwap(b.mode, outcomeOf(swapErr), time.Since(start))

	db := b.db.WithContext(context.WithoutCancel(ctx))
	var err error
	if swapErr != nil {
		err = b.store.SwapRequest.Fail(db, requestID, errorKind(swapErr))
	} else {
		err = b.store.SwapRequest.Complete(db, requestID, execution.TxHash)
	}
	if err != nil {
		b.logger.Error("[SwapNativeToToken][FinishSwapRequest]", map[string]string{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	return errorKind(err)
}

func errorKind(err error) string {
	if kind := facilitator.Kind(err); kind != "" {
		return kind
	}
	return "error"
}

func executionFrom(requestID string, row *model.SwapExecution) *SwapExecution {
	return &SwapExecution{
		RequestID:     requestID,
		TxHash:        row.TxHash,
		BlockNumber:   row.BlockNumber,
		Caller:        row.Caller,
		OutputAsset:   row.OutputAsset,
		AmountIn:      &model.Web3BigInt{Value: row.AmountIn, Decimal: nativeDecimals},
		MinimumOutput: &model.Web3BigInt{Value: row.MinimumOutput},
		AmountOut:     &model.Web3BigInt{Value: row.AmountOut},
	}
}
