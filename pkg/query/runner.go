// Package query runs submitted lookups off the UI loop and tags their
// results so stale ones can be discarded.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"

	"solex/pkg/models"
	solrpc "solex/pkg/solana"
)

// Timeout bounds a single fetch. A dead endpoint surfaces as an error
// instead of pinning the UI on the loading screen.
const Timeout = 30 * time.Second

// DataSource abstracts the network-facing fetches so tests can stub
// them out.
type DataSource interface {
	FetchTransaction(ctx context.Context, network models.Network, sig solana.Signature) (*models.TransactionView, error)
	FetchAccount(ctx context.Context, network models.Network, addr solana.PublicKey) (*models.AccountView, error)
}

// RPCDataSource dials the public endpoint of the requested network for
// each query. The network is frozen into the request at submission.
type RPCDataSource struct {
	Logger *slog.Logger
}

func (d *RPCDataSource) FetchTransaction(ctx context.Context, network models.Network, sig solana.Signature) (*models.TransactionView, error) {
	return solrpc.Dial(network, d.Logger).FetchTransaction(ctx, sig)
}

func (d *RPCDataSource) FetchAccount(ctx context.Context, network models.Network, addr solana.PublicKey) (*models.AccountView, error) {
	return solrpc.Dial(network, d.Logger).FetchAccount(ctx, addr)
}

// Request is one submitted query.
type Request struct {
	ID      uint64
	Kind    models.QueryKind
	Text    string
	Network models.Network
}

// Result is the tagged outcome of a Request. Exactly one of Tx, Account
// and Err is set.
type Result struct {
	ID      uint64
	Tx      *models.TransactionView
	Account *models.AccountView
	Err     error
}

// Runner executes queries and tags each with a monotonically increasing
// id. The UI keeps only the id of its latest submission and drops any
// result carrying an older one.
type Runner struct {
	source DataSource
	nextID atomic.Uint64
}

func NewRunner(source DataSource) *Runner {
	return &Runner{source: source}
}

// Next allocates the request for a new submission.
func (r *Runner) Next(kind models.QueryKind, text string, network models.Network) Request {
	return Request{
		ID:      r.nextID.Add(1),
		Kind:    kind,
		Text:    text,
		Network: network,
	}
}

// Run executes the request to completion under the fetch timeout. It
// blocks; callers run it on a worker and deliver the Result as a
// message.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	res := Result{ID: req.ID}
	switch req.Kind {
	case models.KindSignature:
		sig, err := solana.SignatureFromBase58(req.Text)
		if err != nil {
			res.Err = fmt.Errorf("invalid signature: %w", err)
			return res
		}
		res.Tx, res.Err = r.source.FetchTransaction(ctx, req.Network, sig)
	case models.KindAddress:
		addr, err := solana.PublicKeyFromBase58(req.Text)
		if err != nil {
			res.Err = fmt.Errorf("invalid address: %w", err)
			return res
		}
		res.Account, res.Err = r.source.FetchAccount(ctx, req.Network, addr)
	default:
		res.Err = fmt.Errorf("query is neither a signature nor an address")
	}

	if res.Err != nil && errors.Is(res.Err, context.DeadlineExceeded) {
		res.Err = fmt.Errorf("request timed out after %s", Timeout)
	}
	return res
}
