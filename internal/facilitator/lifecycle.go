package facilitator

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/chain"
)

const initializedVersion = 1

// Config is a snapshot of the instance configuration.
type Config struct {
	Initialized   bool
	Router        common.Address
	WrappedNative common.Address
}

// Initialize sets the router and wrapped native token once for the lifetime of
// the instance. The initialized flag is checked before the addresses.
func (f *Facilitator) Initialize(call *chain.Call, router, wrappedNative common.Address) error {
	if f.Initialized(call.State) {
		return ErrAlreadyInitialized
	}
	if router == (common.Address{}) || wrappedNative == (common.Address{}) {
		return ErrInvalidConfiguration
	}

	call.State.SetState(f.address, slot(fieldRouter), chain.AddressToWord(router))
	call.State.SetState(f.address, slot(fieldWrappedNative), chain.AddressToWord(wrappedNative))
	call.State.SetState(f.address, slot(fieldInitialized), chain.BoolToWord(true))

	log, err := chain.NewLog(f.address, swappyABI.Events["Initialized"], uint64(initializedVersion))
	if err != nil {
		return errors.Wrap(err, "encode Initialized")
	}
	call.State.AddLog(log)
	return nil
}

func (f *Facilitator) Initialized(state *chain.StateDB) bool {
	return chain.WordToBool(state.GetState(f.address, slot(fieldInitialized)))
}

func (f *Facilitator) Router(state *chain.StateDB) (common.Address, error) {
	if !f.Initialized(state) {
		return common.Address{}, ErrNotInitialized
	}
	return chain.WordToAddress(state.GetState(f.address, slot(fieldRouter))), nil
}

func (f *Facilitator) WrappedNative(state *chain.StateDB) (common.Address, error) {
	if !f.Initialized(state) {
		return common.Address{}, ErrNotInitialized
	}
	return chain.WordToAddress(state.GetState(f.address, slot(fieldWrappedNative))), nil
}

// Config never fails; an uninitialized instance reports zero addresses.
func (f *Facilitator) Config(state *chain.StateDB) Config {
	return Config{
		Initialized:   f.Initialized(state),
		Router:        chain.WordToAddress(state.GetState(f.address, slot(fieldRouter))),
		WrappedNative: chain.WordToAddress(state.GetState(f.address, slot(fieldWrappedNative))),
	}
}
