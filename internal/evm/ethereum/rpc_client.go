package ethereum

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
)

// RPCClient wraps a JSON-RPC client with metrics instrumentation.
type RPCClient struct {
	client     RPC
	rpcMetrics RPCMetrics
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client RPC, rpcMetrics RPCMetrics) *RPCClient {
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

// CallContext performs a single JSON-RPC call and records its outcome under the method name.
func (r *RPCClient) CallContext(ctx context.Context, result any, method string, args ...any) (err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(method, err, started)
	}()
	return r.client.CallContext(ctx, result, method, args...)
}

// Dial opens an HTTP JSON-RPC client. Non-empty credentials are sent as basic auth.
func Dial(ctx context.Context, rawURL, user, password string, timeout time.Duration) (*rpc.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	opts := []rpc.ClientOption{
		rpc.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if user != "" || password != "" {
		opts = append(opts, rpc.WithHTTPAuth(basicAuth(user, password)))
	}

	client, err := rpc.DialOptions(ctx, rawURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return client, nil
}

func basicAuth(user, password string) rpc.HTTPAuth {
	token := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return func(h http.Header) error {
		h.Set("Authorization", "Basic "+token)
		return nil
	}
}
