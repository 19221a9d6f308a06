package swap

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dwarvesf/swappy/internal/controller"
	"github.com/dwarvesf/swappy/internal/handler/apierror"
	"github.com/dwarvesf/swappy/internal/model"
	"github.com/dwarvesf/swappy/internal/monitoring"
	"github.com/dwarvesf/swappy/internal/utils/logger"
	"github.com/dwarvesf/swappy/internal/view"
)

// IdempotencyHeader carries the client chosen id of a swap submission.
const IdempotencyHeader = "Idempotency-Key"

const defaultPageSize = 20

type SwapRequest struct {
	Caller        string `json:"caller" validate:"omitempty,eth_addr"`
	OutputAsset   string `json:"output_asset" validate:"required,eth_addr"`
	MinimumOutput string `json:"minimum_output" validate:"omitempty,numeric"`
	FeeTier       uint32 `json:"fee_tier" validate:"required,oneof=100 500 3000 10000"`
	PaymentAmount string `json:"payment_amount" validate:"required,numeric"`
}

type QuoteRequest struct {
	OutputAsset string `form:"output_asset" validate:"required,eth_addr"`
	FeeTier     uint32 `form:"fee_tier" validate:"required,oneof=100 500 3000 10000"`
	AmountIn    string `form:"amount_in" validate:"required,numeric"`
}

type ExecutionsRequest struct {
	OutputAsset string `form:"output_asset" validate:"omitempty,eth_addr"`
	Caller      string `form:"caller" validate:"omitempty,eth_addr"`
	Limit       int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset      int    `form:"offset" validate:"omitempty,min=0"`
}

type handler struct {
	controller controller.IController
	logger     *logger.Logger
	recorder   *monitoring.BusinessMetricsRecorder
	validate   *validator.Validate
}

func New(controller controller.IController, logger *logger.Logger, recorder *monitoring.BusinessMetricsRecorder) IHandler {
	return &handler{
		controller: controller,
		logger:     logger,
		recorder:   recorder,
		validate:   validator.New(),
	}
}

// Swap godoc
// @Summary Swap native currency to a token
// @Description Wraps payment_amount of native currency, swaps it through the configured router and sends at least minimum_output of output_asset to the caller. Replaying an Idempotency-Key returns the first execution.
// @id swapNativeToToken
// @Tags Swap
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client chosen request id"
// @Param request body SwapRequest true "Swap parameters"
// @Success 200 {object} view.Response[controller.SwapExecution]
// @Failure 400 {object} view.ErrorResponse
// @Failure 409 {object} view.ErrorResponse
// @Failure 422 {object} view.ErrorResponse
// @Failure 502 {object} view.ErrorResponse
// @Failure 503 {object} view.ErrorResponse
// @Router /swap [post]
func (h *handler) Swap(c *gin.Context) {
	start := time.Now()

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("[Swap][ShouldBindJSON]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.Error("[Swap][Validator]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	swapReq := controller.SwapRequest{
		RequestID:     c.GetHeader(IdempotencyHeader),
		OutputAsset:   common.HexToAddress(req.OutputAsset),
		FeeTier:       req.FeeTier,
		PaymentAmount: &model.Web3BigInt{Value: req.PaymentAmount, Decimal: 18},
	}
	if req.Caller != "" {
		swapReq.Caller = common.HexToAddress(req.Caller)
	}
	if req.MinimumOutput != "" {
		swapReq.MinimumOutput = &model.Web3BigInt{Value: req.MinimumOutput}
	}

	execution, err := h.controller.SwapNativeToToken(c.Request.Context(), swapReq)
	h.recorder.RecordSwapRequest(swapReq.OutputAsset.Hex(), apierror.Outcome(err), time.Since(start))
	if err != nil {
		h.logger.Error("[Swap][SwapNativeToToken]", map[string]string{
			"error":        err.Error(),
			"output_asset": req.OutputAsset,
			"request_id":   swapReq.RequestID,
		})
		c.JSON(apierror.Status(err), view.CreateResponse[any](nil, err, req, apierror.Message(err)))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](execution, nil, nil, "swap executed"))
}

// Quote godoc
// @Summary Quote a native to token swap
// @Description Asks the router quoter how much output_asset amount_in of wrapped native buys in the given fee tier pool
// @id quoteSwap
// @Tags Swap
// @Produce json
// @Param output_asset query string true "Output token address"
// @Param fee_tier query int true "Pool fee tier" Enums(100, 500, 3000, 10000)
// @Param amount_in query string true "Native amount in wei"
// @Success 200 {object} view.Response[controller.Quote]
// @Failure 400 {object} view.ErrorResponse
// @Failure 409 {object} view.ErrorResponse
// @Failure 422 {object} view.ErrorResponse
// @Router /swap/quote [get]
func (h *handler) Quote(c *gin.Context) {
	start := time.Now()

	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("[Quote][ShouldBindQuery]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Error("[Quote][Validator]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	outputAsset := common.HexToAddress(req.OutputAsset)
	quote, err := h.controller.Quote(c.Request.Context(), outputAsset, req.FeeTier,
		&model.Web3BigInt{Value: req.AmountIn, Decimal: 18})
	h.recorder.RecordQuote(outputAsset.Hex(), apierror.Outcome(err), time.Since(start))
	if err != nil {
		h.logger.Error("[Quote][Quote]", map[string]string{
			"error":        err.Error(),
			"output_asset": req.OutputAsset,
			"fee_tier":     strconv.FormatUint(uint64(req.FeeTier), 10),
		})
		c.JSON(apierror.Status(err), view.CreateResponse[any](nil, err, req, apierror.Message(err)))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](quote, nil, nil, "ok"))
}

// Executions godoc
// @Summary List swap executions
// @Description Pages through recorded SwapExecuted logs, newest first
// @id listSwapExecutions
// @Tags Swap
// @Produce json
// @Param output_asset query string false "Filter by output token"
// @Param caller query string false "Filter by caller"
// @Param limit query int false "Page size, at most 100" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} view.Response[controller.ExecutionList]
// @Failure 400 {object} view.ErrorResponse
// @Failure 500 {object} view.ErrorResponse
// @Router /swap/executions [get]
func (h *handler) Executions(c *gin.Context) {
	var req ExecutionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("[Executions][ShouldBindQuery]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Error("[Executions][Validator]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	filter := model.SwapExecutionFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageSize
	}
	// addresses are stored checksummed
	if req.OutputAsset != "" {
		filter.OutputAsset = common.HexToAddress(req.OutputAsset).Hex()
	}
	if req.Caller != "" {
		filter.Caller = common.HexToAddress(req.Caller).Hex()
	}

	list, err := h.controller.ListExecutions(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("[Executions][ListExecutions]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(apierror.Status(err), view.CreateResponse[any](nil, err, req, apierror.Message(err)))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](list, nil, nil, "ok"))
}
