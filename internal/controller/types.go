package controller

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/dwarvesf/swappy/internal/model"
)

// SwapRequest is one swap submitted through the API. RequestID makes the
// submission idempotent; an empty id gets a random one.
type SwapRequest struct {
	RequestID     string
	Caller        common.Address
	OutputAsset   common.Address
	MinimumOutput *model.Web3BigInt
	FeeTier       uint32
	PaymentAmount *model.Web3BigInt
}

type SwapExecution struct {
	RequestID     string            `json:"request_id"`
	TxHash        string            `json:"tx_hash"`
	BlockNumber   uint64            `json:"block_number"`
	Caller        string            `json:"caller"`
	OutputAsset   string            `json:"output_asset"`
	AmountIn      *model.Web3BigInt `json:"amount_in"`
	MinimumOutput *model.Web3BigInt `json:"minimum_output"`
	AmountOut     *model.Web3BigInt `json:"amount_out"`
}

type FacilitatorConfig struct {
	Mode          string `json:"mode"`
	Address       string `json:"address"`
	Initialized   bool   `json:"initialized"`
	Router        string `json:"router"`
	WrappedNative string `json:"wrapped_native"`
}

type InitializeResult struct {
	TxHash      string            `json:"tx_hash"`
	BlockNumber uint64            `json:"block_number"`
	Config      FacilitatorConfig `json:"config"`
}

type Quote struct {
	TokenIn   string            `json:"token_in"`
	TokenOut  string            `json:"token_out"`
	FeeTier   uint32            `json:"fee_tier"`
	AmountIn  *model.Web3BigInt `json:"amount_in"`
	AmountOut *model.Web3BigInt `json:"amount_out"`
}

type TokenBalance struct {
	Token   string            `json:"token"`
	Symbol  string            `json:"symbol"`
	Balance *model.Web3BigInt `json:"balance"`
}

type Balances struct {
	Address string            `json:"address"`
	Native  *model.Web3BigInt `json:"native"`
	Tokens  []TokenBalance    `json:"tokens"`
}

type ExecutionList struct {
	Executions []model.SwapExecution `json:"executions"`
	Total      int64                 `json:"total"`
}
