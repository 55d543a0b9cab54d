// Package solana wraps the RPC client and normalizes raw payloads into
// the display models.
package solana

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"solex/pkg/models"
)

// ErrNotFound reports a well-formed identifier with no on-chain record
// on the queried network.
var ErrNotFound = errors.New("no on-chain record found")

// recentSignatureLimit bounds the recent-activity list on account views.
const recentSignatureLimit = 10

// Endpoint returns the public RPC URL for a network.
func Endpoint(n models.Network) string {
	switch n {
	case models.Devnet:
		return rpc.DevNet_RPC
	case models.Testnet:
		return rpc.TestNet_RPC
	default:
		return rpc.MainNetBeta_RPC
	}
}

// RPCClient is the subset of the solana-go RPC surface the explorer
// calls. Narrowing the interface keeps tests off the network.
type RPCClient interface {
	GetTransaction(ctx context.Context, signature solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error)
	GetSignaturesForAddressWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetSignaturesForAddressOpts) ([]*rpc.TransactionSignature, error)
}

// Client fetches and decodes transactions and accounts from one
// network's RPC endpoint.
type Client struct {
	rpc    RPCClient
	logger *slog.Logger
}

func NewClient(rpcClient RPCClient, logger *slog.Logger) *Client {
	return &Client{rpc: rpcClient, logger: logger}
}

// Dial builds a client against the public endpoint for the network.
func Dial(network models.Network, logger *slog.Logger) *Client {
	return NewClient(rpc.New(Endpoint(network)), logger)
}

// FetchTransaction fetches one transaction and decodes it. A missing
// transaction is reported as ErrNotFound.
func (c *Client) FetchTransaction(ctx context.Context, sig solana.Signature) (*models.TransactionView, error) {
	maxVersion := uint64(0)
	opts := &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	}
	result, err := c.rpc.GetTransaction(ctx, sig, opts)
	if err != nil && strings.Contains(err.Error(), "expects '\"' or 'n', but found '{'") {
		// Legacy transactions predate the version field; retry without it.
		c.logger.WarnContext(ctx, "could not parse as versioned tx, retrying as legacy",
			"signature", sig.String(),
		)
		result, err = c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: rpc.CommitmentConfirmed,
		})
	}
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if result == nil {
		return nil, ErrNotFound
	}

	view, err := DecodeTransaction(sig, result)
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "fetched transaction",
		"signature", sig.String(),
		"slot", view.Slot,
		"instructions", len(view.Instructions),
	)
	return view, nil
}

// FetchAccount fetches one account plus its token holdings and recent
// signatures. The two auxiliary calls are best effort: their failures
// degrade to empty lists instead of failing the query.
func (c *Client) FetchAccount(ctx context.Context, addr solana.PublicKey) (*models.AccountView, error) {
	info, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account info: %w", err)
	}

	tokens, err := c.rpc.GetTokenAccountsByOwner(ctx, addr,
		&rpc.GetTokenAccountsConfig{ProgramId: TokenProgramID.ToPointer()},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingJSONParsed},
	)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to list token accounts",
			"address", addr.String(),
			"error", err,
		)
		tokens = nil
	}

	limit := recentSignatureLimit
	sigs, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, addr, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to list recent signatures",
			"address", addr.String(),
			"error", err,
		)
		sigs = nil
	}

	view, err := DecodeAccount(addr, info, tokens, sigs)
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "fetched account",
		"address", addr.String(),
		"lamports", view.Lamports,
		"holdings", len(view.Holdings),
	)
	return view, nil
}
