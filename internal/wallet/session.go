package wallet

import (
	"context"
	"errors"
	"math/big"
)

// ErrNotConnected is returned by operations that require an active account.
var ErrNotConnected = errors.New("wallet not connected")

// Account is the single active wallet identity.
type Account struct {
	Address string
	ChainID uint64
}

// Session is the wallet-connection capability consumed by the console. The
// provider owns key material and signing; the session only exposes identity
// and balance for one account on one fixed test network. The CLI root is the
// single owner of the connect/disconnect lifecycle and passes the session
// down to the flows explicitly.
type Session interface {
	Connect(ctx context.Context) (Account, error)
	Disconnect()
	Account() (Account, bool)
	Balance(ctx context.Context) (*big.Int, error)
}

// StaticSession is a fixed-identity Session used in tests and offline runs.
type StaticSession struct {
	Addr      string
	Chain     uint64
	Bal       *big.Int
	connected bool
}

func (s *StaticSession) Connect(ctx context.Context) (Account, error) {
	s.connected = true
	return Account{Address: s.Addr, ChainID: s.Chain}, nil
}

func (s *StaticSession) Disconnect() { s.connected = false }

func (s *StaticSession) Account() (Account, bool) {
	if !s.connected {
		return Account{}, false
	}
	return Account{Address: s.Addr, ChainID: s.Chain}, true
}

func (s *StaticSession) Balance(ctx context.Context) (*big.Int, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}
	if s.Bal == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(s.Bal), nil
}
