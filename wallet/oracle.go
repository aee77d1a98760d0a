package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OracleBatchSize is the fixed address-batch size the scanner queries the
// oracle with.
const OracleBatchSize = 20

// DefaultOracleRateLimit is the rate limiter capacity (tokens per second)
// applied to outbound oracle calls.
const DefaultOracleRateLimit = 3

// HistoryEntry is one confirmed-or-unconfirmed transaction touching an
// address, as returned by the history endpoint.
type HistoryEntry struct {
	TxHash string `json:"tx_hash"`
}

// AddressHistory is one address's history-endpoint result.
type AddressHistory struct {
	Address string         `json:"address"`
	History []HistoryEntry `json:"history"`
}

// UnspentEntry is one unspent output at an address, as returned by the
// unspent endpoint.
type UnspentEntry struct {
	TxPos  uint32 `json:"tx_pos"`
	TxHash string `json:"tx_hash"`
	Value  uint64 `json:"value"`
}

// AddressUnspent is one address's unspent-endpoint result.
type AddressUnspent struct {
	Address string         `json:"address"`
	Unspent []UnspentEntry `json:"unspent"`
}

// Oracle is the host-provided chain-read and broadcast collaborator the
// scanner and publisher depend on. Implementations are expected to
// rate-limit themselves; HTTPOracle does so internally.
type Oracle interface {
	FetchHistory(ctx context.Context, addresses []string) ([]AddressHistory, error)
	FetchUnspent(ctx context.Context, addresses []string) ([]AddressUnspent, error)
	Publish(ctx context.Context, rawTxHex string) error
}

// HTTPOracle implements Oracle against the JSON-over-HTTPS endpoints
// described in the external interface contract, pacing every call through
// an internal token-bucket rate limiter.
type HTTPOracle struct {
	baseURL string
	client  *http.Client
	limiter *RateLimiter
}

// NewHTTPOracle returns an HTTPOracle targeting baseURL (e.g.
// "https://api.example.com"), rate-limited to DefaultOracleRateLimit
// requests per second.
func NewHTTPOracle(baseURL string) *HTTPOracle {
	return &HTTPOracle{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: NewRateLimiter(DefaultOracleRateLimit),
	}
}

func (o *HTTPOracle) post(ctx context.Context, path string, body, out interface{}) error {
	if err := o.limiter.Take(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("wallet: oracle request to %s failed with status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchHistory queries /v1/bsv/main/addresses/history for the given
// addresses.
func (o *HTTPOracle) FetchHistory(ctx context.Context, addresses []string) ([]AddressHistory, error) {
	var out []AddressHistory
	body := map[string][]string{"addresses": addresses}
	if err := o.post(ctx, "/v1/bsv/main/addresses/history", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchUnspent queries /v1/bsv/main/addresses/unspent for the given
// addresses.
func (o *HTTPOracle) FetchUnspent(ctx context.Context, addresses []string) ([]AddressUnspent, error) {
	var out []AddressUnspent
	body := map[string][]string{"addresses": addresses}
	if err := o.post(ctx, "/v1/bsv/main/addresses/unspent", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// rawTxBody carries raw transaction hex to the publish endpoint.
type rawTxBody struct {
	RawTx string `json:"raw_tx"`
}

// Publish submits a signed transaction's hex encoding to
// /v1/bsv/main/tx/raw. A non-2xx response is reported as failure.
func (o *HTTPOracle) Publish(ctx context.Context, rawTxHex string) error {
	return o.post(ctx, "/v1/bsv/main/tx/raw", rawTxBody{RawTx: rawTxHex}, nil)
}
