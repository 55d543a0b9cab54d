package solana

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"solex/pkg/models"
)

// lamportsPerSignature is the base fee charged per required signature.
// Anything paid above it is priority fee.
const lamportsPerSignature = 5000

// DecodeTransaction normalizes a raw RPC transaction result into a
// TransactionView. It returns either a complete view or a DecodeError,
// never a partial view.
func DecodeTransaction(sig solana.Signature, result *rpc.GetTransactionResult) (*models.TransactionView, error) {
	if result == nil || result.Transaction == nil {
		return nil, &models.DecodeError{Kind: models.EmptyResult, Detail: "no transaction in result"}
	}
	tx, err := result.Transaction.GetTransaction()
	if err != nil {
		return nil, &models.DecodeError{Kind: models.UnsupportedEncoding, Detail: err.Error()}
	}
	var blockTime *time.Time
	if result.BlockTime != nil {
		t := result.BlockTime.Time()
		blockTime = &t
	}
	return decodeTransaction(sig, tx, result.Meta, result.Slot, blockTime)
}

func decodeTransaction(sig solana.Signature, tx *solana.Transaction, meta *rpc.TransactionMeta, slot uint64, blockTime *time.Time) (*models.TransactionView, error) {
	if tx == nil {
		return nil, &models.DecodeError{Kind: models.EmptyResult, Detail: "no transaction in result"}
	}
	if meta == nil {
		return nil, &models.DecodeError{Kind: models.MalformedPayload, Detail: "missing transaction meta"}
	}

	keys := tx.Message.AccountKeys
	if len(meta.PreBalances) != len(keys) || len(meta.PostBalances) != len(keys) {
		return nil, &models.DecodeError{
			Kind: models.MalformedPayload,
			Detail: fmt.Sprintf("balance arrays do not match account keys: %d keys, %d pre, %d post",
				len(keys), len(meta.PreBalances), len(meta.PostBalances)),
		}
	}

	status := models.TransactionStatus{}
	if meta.Err != nil {
		status.Failed = true
		status.Err = fmt.Sprintf("%v", meta.Err)
	}

	header := tx.Message.Header
	numSigners := int(header.NumRequiredSignatures)
	writableSignedEnd := numSigners - int(header.NumReadonlySignedAccounts)
	writableUnsignedEnd := len(keys) - int(header.NumReadonlyUnsignedAccounts)

	accounts := make([]models.AccountEntry, len(keys))
	for i, key := range keys {
		accounts[i] = models.AccountEntry{
			Address:     key,
			PreBalance:  meta.PreBalances[i],
			PostBalance: meta.PostBalances[i],
			Delta:       int64(meta.PostBalances[i]) - int64(meta.PreBalances[i]),
			IsSigner:    i < numSigners,
			IsWritable:  i < writableSignedEnd || (i >= numSigners && i < writableUnsignedEnd),
		}
	}

	instructions := make([]models.InstructionView, 0, len(tx.Message.Instructions))
	transfers := []models.TokenTransferView{}
	for _, ix := range tx.Message.Instructions {
		view, err := decodeInstruction(ix, keys)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, view)
		if transfer, ok := decodeTokenTransfer(ix, keys); ok {
			transfers = append(transfers, transfer)
		}
	}
	// Inner instructions contribute token transfers only; the
	// instruction list stays top-level. Indexes past the static keys
	// belong to lookup-table loaded addresses and are skipped.
	for _, inner := range meta.InnerInstructions {
		for _, ix := range inner.Instructions {
			compiled := solana.CompiledInstruction{
				ProgramIDIndex: ix.ProgramIDIndex,
				Accounts:       ix.Accounts,
				Data:           ix.Data,
			}
			if transfer, ok := decodeTokenTransfer(compiled, keys); ok {
				transfers = append(transfers, transfer)
			}
		}
	}

	var computeUnits uint64
	if meta.ComputeUnitsConsumed != nil {
		computeUnits = *meta.ComputeUnitsConsumed
	}

	var priorityFee uint64
	if base := uint64(numSigners) * lamportsPerSignature; meta.Fee > base {
		priorityFee = meta.Fee - base
	}

	return &models.TransactionView{
		Signature:      sig,
		Slot:           slot,
		BlockTime:      blockTime,
		Status:         status,
		Fee:            meta.Fee,
		PriorityFee:    priorityFee,
		ComputeUnits:   computeUnits,
		Instructions:   instructions,
		Accounts:       accounts,
		TokenTransfers: transfers,
		Logs:           meta.LogMessages,
	}, nil
}

func decodeInstruction(ix solana.CompiledInstruction, keys []solana.PublicKey) (models.InstructionView, error) {
	if int(ix.ProgramIDIndex) >= len(keys) {
		return models.InstructionView{}, &models.DecodeError{
			Kind:   models.MalformedPayload,
			Detail: fmt.Sprintf("program id index %d out of range (%d keys)", ix.ProgramIDIndex, len(keys)),
		}
	}
	program := keys[ix.ProgramIDIndex]
	return models.InstructionView{
		ProgramID:    program,
		ProgramLabel: ProgramLabel(program),
		Kind:         InstructionKind(program, ix.Data),
		DataLen:      len(ix.Data),
	}, nil
}

// decodeTokenTransfer extracts an SPL token movement from a Token or
// Token-2022 instruction. Anything that is not a Transfer or
// TransferChecked, or that is truncated, is reported as no transfer.
func decodeTokenTransfer(ix solana.CompiledInstruction, keys []solana.PublicKey) (models.TokenTransferView, bool) {
	if int(ix.ProgramIDIndex) >= len(keys) {
		return models.TokenTransferView{}, false
	}
	program := keys[ix.ProgramIDIndex]
	if program != TokenProgramID && program != Token2022ProgramID {
		return models.TokenTransferView{}, false
	}
	if len(ix.Data) == 0 {
		return models.TokenTransferView{}, false
	}

	account := func(pos int) solana.PublicKey {
		if pos < len(ix.Accounts) && int(ix.Accounts[pos]) < len(keys) {
			return keys[ix.Accounts[pos]]
		}
		return solana.PublicKey{}
	}

	switch ix.Data[0] {
	case tokenTransfer:
		// Transfer: u8 type, u64 amount; accounts are
		// [source, destination, authority]. No mint, no decimals.
		if len(ix.Data) < 9 {
			return models.TokenTransferView{}, false
		}
		amount := binary.LittleEndian.Uint64(ix.Data[1:9])
		return models.TokenTransferView{
			Source:      account(0),
			Destination: account(1),
			Amount:      amount,
			UIAmount:    float64(amount),
		}, true
	case tokenTransferChecked:
		// TransferChecked: u8 type, u64 amount, u8 decimals; accounts
		// are [source, mint, destination, authority].
		if len(ix.Data) < 10 {
			return models.TokenTransferView{}, false
		}
		amount := binary.LittleEndian.Uint64(ix.Data[1:9])
		decimals := ix.Data[9]
		return models.TokenTransferView{
			Mint:          account(1),
			Source:        account(0),
			Destination:   account(2),
			Amount:        amount,
			Decimals:      decimals,
			DecimalsKnown: true,
			UIAmount:      float64(amount) / math.Pow10(int(decimals)),
		}, true
	}
	return models.TokenTransferView{}, false
}

// DecodeAccount normalizes the three per-account RPC results into an
// AccountView. tokens and sigs come from best-effort calls and may be
// nil; they degrade to empty lists.
func DecodeAccount(addr solana.PublicKey, info *rpc.GetAccountInfoResult, tokens *rpc.GetTokenAccountsResult, sigs []*rpc.TransactionSignature) (*models.AccountView, error) {
	if info == nil || info.Value == nil {
		return nil, &models.DecodeError{Kind: models.EmptyResult, Detail: "no account in result"}
	}
	acc := info.Value

	dataSize := 0
	if acc.Data != nil {
		dataSize = len(acc.Data.GetBinary())
	}

	kind := models.DataAccount
	switch {
	case acc.Executable:
		kind = models.ProgramAccount
	case acc.Owner == SystemProgramID:
		kind = models.SystemAccount
	}

	rentEpoch := fmt.Sprint(acc.RentEpoch)
	if rentEpoch == "<nil>" {
		rentEpoch = "unknown"
	}

	view := &models.AccountView{
		Address:    addr,
		Lamports:   acc.Lamports,
		Kind:       kind,
		Owner:      acc.Owner,
		OwnerLabel: ProgramLabel(acc.Owner),
		Executable: acc.Executable,
		RentEpoch:  rentEpoch,
		DataSize:   dataSize,
	}

	if tokens != nil {
		for _, tokenAccount := range tokens.Value {
			if tokenAccount == nil || tokenAccount.Account.Data == nil {
				continue
			}
			holding, err := parseTokenHolding(tokenAccount.Account.Data.GetRawJSON())
			if err != nil {
				// Unparsable entries are skipped, not fatal.
				continue
			}
			view.Holdings = append(view.Holdings, holding)
		}
	}

	for _, sig := range sigs {
		if sig == nil {
			continue
		}
		summary := models.SignatureSummary{
			Signature: sig.Signature,
			Slot:      sig.Slot,
			Failed:    sig.Err != nil,
		}
		if sig.BlockTime != nil {
			t := sig.BlockTime.Time()
			summary.Time = &t
		}
		view.RecentActivity = append(view.RecentActivity, summary)
		if len(view.RecentActivity) >= recentSignatureLimit {
			break
		}
	}

	return view, nil
}

// parseTokenHolding reads the jsonParsed form of an SPL token account.
func parseTokenHolding(raw json.RawMessage) (models.TokenHolding, error) {
	if len(raw) == 0 {
		return models.TokenHolding{}, fmt.Errorf("no parsed token data")
	}
	var payload struct {
		Parsed struct {
			Info struct {
				Mint        string `json:"mint"`
				TokenAmount struct {
					Amount   string  `json:"amount"`
					Decimals uint8   `json:"decimals"`
					UIAmount float64 `json:"uiAmount"`
				} `json:"tokenAmount"`
			} `json:"info"`
		} `json:"parsed"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.TokenHolding{}, fmt.Errorf("parse token account: %w", err)
	}
	mint, err := solana.PublicKeyFromBase58(payload.Parsed.Info.Mint)
	if err != nil {
		return models.TokenHolding{}, fmt.Errorf("token account mint: %w", err)
	}
	amount, err := strconv.ParseUint(payload.Parsed.Info.TokenAmount.Amount, 10, 64)
	if err != nil {
		return models.TokenHolding{}, fmt.Errorf("token amount: %w", err)
	}
	return models.TokenHolding{
		Mint:     mint,
		Amount:   amount,
		Decimals: payload.Parsed.Info.TokenAmount.Decimals,
		UIAmount: payload.Parsed.Info.TokenAmount.UIAmount,
	}, nil
}
