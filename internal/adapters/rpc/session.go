// Package rpc implements a minimal JSON-RPC 2.0 over HTTP session for raw node calls.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"evm_tx_toolkit/internal/core/domain"
)

const (
	jsonRPCVersion = "2.0"
	// requestID is sent with every call. Responses are matched by connection, not by id.
	requestID = 1
)

// Session issues JSON-RPC calls against a single endpoint.
type Session struct {
	rpcURL     string
	httpClient *http.Client
}

// StartRPC opens a session for url. A nil httpClient means http.DefaultClient.
func StartRPC(url string, httpClient *http.Client) *Session {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Session{
		rpcURL:     url,
		httpClient: httpClient,
	}
}

// URL returns the endpoint of the session.
func (s *Session) URL() string {
	return s.rpcURL
}

// Request performs method with params and returns the raw result.
// Every failure wraps domain.ErrTransport.
func (s *Session) Request(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	reqBody := JSONRPCRequest{
		ID:      requestID,
		JSONRPC: jsonRPCVersion,
		Method:  method,
		Params:  params,
	}

	jsonReqBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal RPC request: %w", domain.ErrTransport, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.rpcURL, bytes.NewReader(jsonReqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create HTTP request: %w", domain.ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute HTTP request: %w", domain.ErrTransport, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", domain.ErrTransport, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP request failed with status %s: %s", domain.ErrTransport, httpResp.Status, string(bodyBytes))
	}

	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(bodyBytes, &rpcResp); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal RPC response: %w, body: %s", domain.ErrTransport, err, string(bodyBytes))
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("%w: RPC error: code=%d, message='%s'", domain.ErrTransport, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if len(rpcResp.Result) == 0 {
		return nil, fmt.Errorf("%w: RPC response has neither result nor error", domain.ErrTransport)
	}

	return rpcResp.Result, nil
}

// RequestOrEmpty performs method and returns the result as text, or "" on any failure.
// A JSON string result is returned unquoted; any other result is returned as JSON.
func (s *Session) RequestOrEmpty(ctx context.Context, method string, params []any) string {
	result, err := s.Request(ctx, method, params)
	if err != nil || len(result) == 0 {
		return ""
	}
	return ResultText(result)
}

// ResultText renders a raw result for display.
func ResultText(result json.RawMessage) string {
	var text string
	if err := json.Unmarshal(result, &text); err == nil {
		return text
	}
	return string(result)
}
