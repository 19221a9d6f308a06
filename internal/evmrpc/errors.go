package evmrpc

import (
	"bytes"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/contracts/swappy"
	"github.com/dwarvesf/swappy/internal/facilitator"
)

var ErrTransactionReverted = errors.New("transaction reverted")

var invalidInitializationSelector = mustErrorSelector("InvalidInitialization")

func mustErrorSelector(name string) []byte {
	parsed, err := swappy.SwappyMetaData.GetAbi()
	if err != nil {
		panic(err)
	}
	e, ok := parsed.Errors[name]
	if !ok {
		panic("missing error " + name)
	}
	return e.ID[:4]
}

// revertReasons maps substrings of node revert messages to facilitator errors.
// Order matters: the first match wins.
var revertReasons = []struct {
	match string
	err   error
}{
	{"too little received", facilitator.ErrSlippageExceeded},
	{"invalidinitialization", facilitator.ErrAlreadyInitialized},
	{"reentrant", facilitator.ErrReentrantCall},
	{"insufficient funds", facilitator.ErrInvalidPayment},
	{"reverted: tf", facilitator.ErrTransferFailure},
	{"reverted: stf", facilitator.ErrRouterFailure},
	{"execution reverted", facilitator.ErrRouterFailure},
}

// classifyRevert turns a node error into the matching facilitator error so the
// onchain and simulated modes fail the same way. Unknown errors pass through.
func classifyRevert(err error) error {
	if err == nil {
		return nil
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil && bytes.HasPrefix(raw, invalidInitializationSelector) {
				return errors.Wrap(facilitator.ErrAlreadyInitialized, err.Error())
			}
		}
	}

	msg := strings.ToLower(err.Error())
	for _, reason := range revertReasons {
		if strings.Contains(msg, reason.match) {
			return errors.Wrap(reason.err, err.Error())
		}
	}
	return err
}

func blockTime(header *types.Header) time.Time {
	return time.Unix(int64(header.Time), 0).UTC()
}
