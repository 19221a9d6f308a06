package account

import (
	"net/http"
	"strings"
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

type BalancesRequest struct {
	Address string   `json:"address" validate:"required,eth_addr"`
	Tokens  []string `json:"tokens,omitempty" validate:"max=20,dive,eth_addr"`
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

// Balances godoc
// @Summary Get account balances
// @Description Returns the native balance of an account and its balances of the requested tokens. Without tokens, the wrapped native token and every known token are listed.
// @id getAccountBalances
// @Tags Account
// @Produce json
// @Param address path string true "Account address"
// @Param tokens query string false "Comma separated token addresses"
// @Success 200 {object} view.Response[controller.Balances]
// @Failure 400 {object} view.ErrorResponse
// @Failure 503 {object} view.ErrorResponse
// @Router /accounts/{address}/balances [get]
func (h *handler) Balances(c *gin.Context) {
	start := time.Now()

	req := BalancesRequest{
		Address: c.Param("address"),
		Tokens:  splitTokens(c.Query("tokens")),
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Error("[Balances][Validator]", map[string]string{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	tokens := make([]common.Address, 0, len(req.Tokens))
	for _, t := range req.Tokens {
		tokens = append(tokens, common.HexToAddress(t))
	}

	balances, err := h.controller.Balances(c.Request.Context(), common.HexToAddress(req.Address), tokens)
	h.recorder.RecordBalanceLookup(apierror.Outcome(err), time.Since(start))
	if err != nil {
		h.logger.Error("[Balances][Balances]", map[string]string{
			"error":   err.Error(),
			"address": req.Address,
		})
		c.JSON(apierror.Status(err), view.CreateResponse[any](nil, err, req, apierror.Message(err)))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](balances, nil, nil, "ok"))
}

func splitTokens(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
