package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SepoliaChainID is the fixed test network the portal operates on.
const SepoliaChainID uint64 = 11155111

// RPCConfig contains wallet provider configuration.
type RPCConfig struct {
	RPCURL  string `json:"rpc_url"`
	ChainID uint64 `json:"chain_id"`
	Address string `json:"address"`
}

// RPCSession is a Session backed by an Ethereum JSON-RPC endpoint. It never
// holds key material: the address is supplied by the provider configuration
// and the session only reads chain id and balance.
type RPCSession struct {
	cfg        RPCConfig
	httpClient *http.Client
	logger     *zap.Logger

	mu      sync.Mutex
	account *Account
}

// NewRPCSession creates a wallet session against the configured endpoint.
// A zero ChainID defaults to Sepolia.
func NewRPCSession(cfg RPCConfig, logger *zap.Logger) *RPCSession {
	if cfg.ChainID == 0 {
		cfg.ChainID = SepoliaChainID
	}
	return &RPCSession{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Connect verifies the endpoint serves the expected chain and activates the
// configured account.
func (s *RPCSession) Connect(ctx context.Context) (Account, error) {
	if s.cfg.Address == "" {
		return Account{}, fmt.Errorf("connect wallet: no account address configured")
	}

	var chainHex string
	if err := s.call(ctx, "eth_chainId", nil, &chainHex); err != nil {
		return Account{}, fmt.Errorf("connect wallet: %w", err)
	}
	chainID, err := parseHexUint(chainHex)
	if err != nil {
		return Account{}, fmt.Errorf("connect wallet: bad chain id %q: %w", chainHex, err)
	}
	if chainID != s.cfg.ChainID {
		return Account{}, fmt.Errorf("connect wallet: endpoint serves chain %d, want %d", chainID, s.cfg.ChainID)
	}

	account := Account{Address: s.cfg.Address, ChainID: chainID}
	s.mu.Lock()
	s.account = &account
	s.mu.Unlock()

	s.logger.Info("wallet connected",
		zap.String("address", account.Address),
		zap.Uint64("chain_id", account.ChainID))
	return account, nil
}

// Disconnect clears the active account.
func (s *RPCSession) Disconnect() {
	s.mu.Lock()
	s.account = nil
	s.mu.Unlock()
	s.logger.Info("wallet disconnected")
}

// Account returns the active account, if connected.
func (s *RPCSession) Account() (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account == nil {
		return Account{}, false
	}
	return *s.account, true
}

// Balance queries the active account's balance in wei.
func (s *RPCSession) Balance(ctx context.Context) (*big.Int, error) {
	account, ok := s.Account()
	if !ok {
		return nil, ErrNotConnected
	}

	var balanceHex string
	params := []interface{}{account.Address, "latest"}
	if err := s.call(ctx, "eth_getBalance", params, &balanceHex); err != nil {
		return nil, fmt.Errorf("query balance: %w", err)
	}

	balance, ok := new(big.Int).SetString(strings.TrimPrefix(balanceHex, "0x"), 16)
	if !ok {
		return nil, fmt.Errorf("query balance: bad balance %q", balanceHex)
	}
	return balance, nil
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *RPCSession) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: 1})
	if err != nil {
		return fmt.Errorf("encode rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.RPCURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("wallet rpc request failed", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("rpc %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s: endpoint returned status %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("rpc %s: decode response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc %s: %s (code %d)", method, rpcResp.Error.Message, rpcResp.Error.Code)
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("rpc %s: decode result: %w", method, err)
	}
	return nil
}

func parseHexUint(s string) (uint64, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	if trimmed == "" {
		return 0, fmt.Errorf("empty hex value")
	}
	value, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return 0, fmt.Errorf("not a hex value")
	}
	return value.Uint64(), nil
}

// FormatEther renders a wei balance as a decimal ether string for display.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	ether := new(big.Rat).SetFrac(wei, big.NewInt(1e18))
	return strings.TrimRight(strings.TrimRight(ether.FloatString(6), "0"), ".")
}
