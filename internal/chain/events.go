package chain

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// NewLog ABI-encodes an event emitted by addr. args follow the order of the
// event inputs; indexed ones become topics, the rest are packed into data.
func NewLog(addr common.Address, event abi.Event, args ...interface{}) (*types.Log, error) {
	if len(args) != len(event.Inputs) {
		return nil, errors.Errorf("event %s: got %d args, want %d", event.Name, len(args), len(event.Inputs))
	}

	topics := []common.Hash{event.ID}
	var data []interface{}
	for i, input := range event.Inputs {
		if !input.Indexed {
			data = append(data, args[i])
			continue
		}
		t, err := abi.MakeTopics([]interface{}{args[i]})
		if err != nil {
			return nil, errors.Wrapf(err, "event %s: topic %s", event.Name, input.Name)
		}
		topics = append(topics, t[0][0])
	}

	packed, err := event.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		return nil, errors.Wrapf(err, "event %s: pack data", event.Name)
	}

	return &types.Log{
		Address: addr,
		Topics:  topics,
		Data:    packed,
	}, nil
}
