package store

import (
	"github.com/dwarvesf/swappy/internal/store/account"
	"github.com/dwarvesf/swappy/internal/store/chainhead"
	"github.com/dwarvesf/swappy/internal/store/contractstorage"
	"github.com/dwarvesf/swappy/internal/store/swapexecution"
	"github.com/dwarvesf/swappy/internal/store/swaprequest"
)

type Store struct {
	ContractStorage contractstorage.IStore
	Account         account.IStore
	ChainHead       chainhead.IStore
	SwapExecution   swapexecution.IStore
	SwapRequest     swaprequest.IStore
}

func New() *Store {
	return &Store{
		ContractStorage: contractstorage.New(),
		Account:         account.New(),
		ChainHead:       chainhead.New(),
		SwapExecution:   swapexecution.New(),
		SwapRequest:     swaprequest.New(),
	}
}
