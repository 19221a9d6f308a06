package facilitator

import (
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dwarvesf/swappy/internal/controller"
	"github.com/dwarvesf/swappy/internal/handler/apierror"
	"github.com/dwarvesf/swappy/internal/monitoring"
	"github.com/dwarvesf/swappy/internal/utils/logger"
	"github.com/dwarvesf/swappy/internal/view"
)

type InitializeRequest struct {
	Router        string `json:"router" validate:"required,eth_addr"`
	WrappedNative string `json:"wrapped_native" validate:"required,eth_addr"`
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

// Initialize godoc
// @Summary Initialize the facilitator
// @Description Sets the swap router and wrapped native token. Succeeds once per facilitator; zero addresses are rejected.
// @id initializeFacilitator
// @Tags Facilitator
// @Accept json
// @Produce json
// @Param request body InitializeRequest true "Router and wrapped native token"
// @Success 200 {object} view.Response[controller.InitializeResult]
// @Failure 400 {object} view.ErrorResponse
// @Failure 409 {object} view.ErrorResponse
// @Failure 503 {object} view.ErrorResponse
// @Router /facilitator/initialize [post]
func (h *handler) Initialize(c *gin.Context) {
	start := time.Now()

	var req InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("[Initialize][ShouldBindJSON]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Error("[Initialize][Validator]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	result, err := h.controller.Initialize(c.Request.Context(),
		common.HexToAddress(req.Router), common.HexToAddress(req.WrappedNative))
	h.recorder.RecordInitialization(apierror.Outcome(err), time.Since(start))
	if err != nil {
		h.logger.Error("[Initialize][Initialize]", map[string]string{
			"error":          err.Error(),
			"router":         req.Router,
			"wrapped_native": req.WrappedNative,
		})
		c.JSON(apierror.Status(err), view.CreateResponse[any](nil, err, req, apierror.Message(err)))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](result, nil, nil, "facilitator initialized"))
}

// Config godoc
// @Summary Get facilitator configuration
// @Description Returns the router and wrapped native token, zero addresses before initialization
// @id getFacilitatorConfig
// @Tags Facilitator
// @Produce json
// @Success 200 {object} view.Response[controller.FacilitatorConfig]
// @Failure 500 {object} view.ErrorResponse
// @Failure 503 {object} view.ErrorResponse
// @Router /facilitator/config [get]
func (h *handler) Config(c *gin.Context) {
	cfg, err := h.controller.Config(c.Request.Context())
	if err != nil {
		h.logger.Error("[Config][Config]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(apierror.Status(err), view.CreateResponse[any](nil, err, nil, apierror.Message(err)))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](cfg, nil, nil, "ok"))
}
