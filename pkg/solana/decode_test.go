package solana

import (
	"encoding/binary"
	"encoding/json"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solex/pkg/models"
)

var (
	testSig   = solana.MustSignatureFromBase58("5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7")
	walletA   = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	walletB   = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	authority = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
)

func systemTransferData(lamports uint64) []byte {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], systemTransfer)
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	return data
}

// makeEnvelope builds a TransactionResultEnvelope from a Transaction.
// The envelope has unexported fields, so it goes through JSON.
func makeEnvelope(t *testing.T, tx *solana.Transaction) *rpc.TransactionResultEnvelope {
	t.Helper()
	txJSON, err := json.Marshal(tx)
	require.NoError(t, err)

	var temp struct {
		Transaction json.RawMessage `json:"transaction"`
	}
	temp.Transaction = txJSON
	envelopeJSON, err := json.Marshal(temp)
	require.NoError(t, err)

	var result rpc.GetTransactionResult
	require.NoError(t, json.Unmarshal(envelopeJSON, &result))
	return result.Transaction
}

func TestDecodeTransaction_SystemTransfer(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA, walletB, SystemProgramID},
			Header: solana.MessageHeader{
				NumRequiredSignatures:       1,
				NumReadonlySignedAccounts:   0,
				NumReadonlyUnsignedAccounts: 1,
			},
			Instructions: []solana.CompiledInstruction{
				{
					ProgramIDIndex: 2,
					Accounts:       []uint16{0, 1},
					Data:           systemTransferData(1_000_000_000),
				},
			},
		},
	}
	meta := &rpc.TransactionMeta{
		Fee:          5000,
		PreBalances:  []uint64{2_000_005_000, 500, 1},
		PostBalances: []uint64{1_000_000_000, 1_000_000_500, 1},
		LogMessages:  []string{"Program 11111111111111111111111111111111 invoke [1]"},
	}

	view, err := decodeTransaction(testSig, tx, meta, 100, nil)
	require.NoError(t, err)

	assert.Equal(t, testSig, view.Signature)
	assert.Equal(t, uint64(100), view.Slot)
	assert.False(t, view.Status.Failed)
	assert.Equal(t, uint64(5000), view.Fee)
	assert.Equal(t, uint64(0), view.PriorityFee)

	require.Len(t, view.Instructions, 1)
	assert.Equal(t, "System", view.Instructions[0].ProgramLabel)
	assert.Equal(t, "Transfer", view.Instructions[0].Kind)
	assert.Equal(t, 12, view.Instructions[0].DataLen)
	assert.Empty(t, view.TokenTransfers)

	require.Len(t, view.Accounts, 3)
	assert.True(t, view.Accounts[0].IsSigner)
	assert.True(t, view.Accounts[0].IsWritable)
	assert.False(t, view.Accounts[1].IsSigner)
	assert.True(t, view.Accounts[1].IsWritable)
	assert.False(t, view.Accounts[2].IsSigner)
	assert.False(t, view.Accounts[2].IsWritable)
}

func TestDecodeTransaction_BalanceDeltas(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA, walletB, SystemProgramID},
			Header:      solana.MessageHeader{NumRequiredSignatures: 1, NumReadonlyUnsignedAccounts: 1},
		},
	}
	meta := &rpc.TransactionMeta{
		PreBalances:  []uint64{10, 20, 30},
		PostBalances: []uint64{8, 25, 30},
	}

	view, err := decodeTransaction(testSig, tx, meta, 1, nil)
	require.NoError(t, err)
	require.Len(t, view.Accounts, 3)

	// Deltas are positional and keep account-keys order.
	assert.Equal(t, int64(-2), view.Accounts[0].Delta)
	assert.Equal(t, int64(5), view.Accounts[1].Delta)
	assert.Equal(t, int64(0), view.Accounts[2].Delta)
	assert.Equal(t, walletA, view.Accounts[0].Address)
	assert.Equal(t, walletB, view.Accounts[1].Address)
}

func TestDecodeTransaction_BalanceMismatch(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA, walletB, SystemProgramID},
		},
	}
	meta := &rpc.TransactionMeta{
		PreBalances:  []uint64{10, 20},
		PostBalances: []uint64{8, 25, 30},
	}

	view, err := decodeTransaction(testSig, tx, meta, 1, nil)
	assert.Nil(t, view)

	var decodeErr *models.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, models.MalformedPayload, decodeErr.Kind)
}

func TestDecodeTransaction_MissingMeta(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{AccountKeys: []solana.PublicKey{walletA}},
	}

	_, err := decodeTransaction(testSig, tx, nil, 1, nil)
	var decodeErr *models.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, models.MalformedPayload, decodeErr.Kind)
}

func TestDecodeTransaction_FailedStatus(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{AccountKeys: []solana.PublicKey{walletA}},
	}
	meta := &rpc.TransactionMeta{
		Err:          map[string]interface{}{"InstructionError": []interface{}{float64(0), "Custom"}},
		PreBalances:  []uint64{10},
		PostBalances: []uint64{5},
	}

	view, err := decodeTransaction(testSig, tx, meta, 1, nil)
	require.NoError(t, err)
	assert.True(t, view.Status.Failed)
	assert.Contains(t, view.Status.Err, "InstructionError")
}

func TestDecodeTransaction_PriorityFee(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA},
			Header:      solana.MessageHeader{NumRequiredSignatures: 1},
		},
	}

	meta := &rpc.TransactionMeta{Fee: 7000, PreBalances: []uint64{1}, PostBalances: []uint64{1}}
	view, err := decodeTransaction(testSig, tx, meta, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), view.PriorityFee)

	// The base fee alone never counts as priority fee.
	meta = &rpc.TransactionMeta{Fee: 5000, PreBalances: []uint64{1}, PostBalances: []uint64{1}}
	view, err = decodeTransaction(testSig, tx, meta, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), view.PriorityFee)
}

func TestDecodeTransaction_TokenTransferChecked(t *testing.T) {
	data := make([]byte, 10)
	data[0] = tokenTransferChecked
	binary.LittleEndian.PutUint64(data[1:9], 1_500_000)
	data[9] = 6

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA, walletB, authority, TokenProgramID},
			Instructions: []solana.CompiledInstruction{
				{
					ProgramIDIndex: 3,
					Accounts:       []uint16{0, 1, 2, 2}, // source, mint, dest, authority
					Data:           data,
				},
			},
		},
	}
	meta := &rpc.TransactionMeta{
		PreBalances:  []uint64{0, 0, 0, 0},
		PostBalances: []uint64{0, 0, 0, 0},
	}

	view, err := decodeTransaction(testSig, tx, meta, 1, nil)
	require.NoError(t, err)
	require.Len(t, view.TokenTransfers, 1)

	transfer := view.TokenTransfers[0]
	assert.Equal(t, walletB, transfer.Mint)
	assert.Equal(t, walletA, transfer.Source)
	assert.Equal(t, authority, transfer.Destination)
	assert.Equal(t, uint64(1_500_000), transfer.Amount)
	assert.Equal(t, uint8(6), transfer.Decimals)
	assert.True(t, transfer.DecimalsKnown)
	assert.InDelta(t, 1.5, transfer.UIAmount, 1e-9)
}

func TestDecodeTransaction_PlainTokenTransfer(t *testing.T) {
	data := make([]byte, 9)
	data[0] = tokenTransfer
	binary.LittleEndian.PutUint64(data[1:9], 42)

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA, walletB, authority, Token2022ProgramID},
			Instructions: []solana.CompiledInstruction{
				{
					ProgramIDIndex: 3,
					Accounts:       []uint16{0, 1, 2}, // source, dest, authority
					Data:           data,
				},
			},
		},
	}
	meta := &rpc.TransactionMeta{
		PreBalances:  []uint64{0, 0, 0, 0},
		PostBalances: []uint64{0, 0, 0, 0},
	}

	view, err := decodeTransaction(testSig, tx, meta, 1, nil)
	require.NoError(t, err)
	require.Len(t, view.TokenTransfers, 1)

	transfer := view.TokenTransfers[0]
	assert.False(t, transfer.DecimalsKnown)
	assert.True(t, transfer.Mint.IsZero())
	assert.Equal(t, walletA, transfer.Source)
	assert.Equal(t, walletB, transfer.Destination)
	assert.Equal(t, uint64(42), transfer.Amount)
}

func TestDecodeTransaction_InnerTokenTransfers(t *testing.T) {
	data := make([]byte, 9)
	data[0] = tokenTransfer
	binary.LittleEndian.PutUint64(data[1:9], 7)

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA, walletB, authority, TokenProgramID},
			Instructions: []solana.CompiledInstruction{
				{ProgramIDIndex: 2, Accounts: []uint16{0, 1}, Data: []byte{1}},
			},
		},
	}
	meta := &rpc.TransactionMeta{
		PreBalances:  []uint64{0, 0, 0, 0},
		PostBalances: []uint64{0, 0, 0, 0},
		InnerInstructions: []rpc.InnerInstruction{
			{
				Index: 0,
				Instructions: []rpc.CompiledInstruction{
					{ProgramIDIndex: 3, Accounts: []uint16{0, 1, 2}, Data: data},
				},
			},
		},
	}

	view, err := decodeTransaction(testSig, tx, meta, 1, nil)
	require.NoError(t, err)

	// Inner instructions feed token transfers but not the instruction
	// list.
	assert.Len(t, view.Instructions, 1)
	require.Len(t, view.TokenTransfers, 1)
	assert.Equal(t, uint64(7), view.TokenTransfers[0].Amount)
}

func TestDecodeTransaction_Idempotent(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{walletA, walletB, SystemProgramID},
			Header: solana.MessageHeader{
				NumRequiredSignatures:       1,
				NumReadonlyUnsignedAccounts: 1,
			},
			Instructions: []solana.CompiledInstruction{
				{ProgramIDIndex: 2, Accounts: []uint16{0, 1}, Data: systemTransferData(99)},
			},
		},
	}
	blockTime := solana.UnixTimeSeconds(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Unix())
	result := &rpc.GetTransactionResult{
		Slot:        42,
		BlockTime:   &blockTime,
		Transaction: makeEnvelope(t, tx),
		Meta: &rpc.TransactionMeta{
			Fee:          5000,
			PreBalances:  []uint64{100, 0, 1},
			PostBalances: []uint64{95, 5, 1},
		},
	}

	first, err := DecodeTransaction(testSig, result)
	require.NoError(t, err)
	second, err := DecodeTransaction(testSig, result)
	require.NoError(t, err)
	require.Equal(t, first, second)

	assert.Equal(t, uint64(42), first.Slot)
	require.NotNil(t, first.BlockTime)
	assert.Equal(t, 2024, first.BlockTime.UTC().Year())
}

func TestDecodeTransaction_EmptyResult(t *testing.T) {
	_, err := DecodeTransaction(testSig, nil)
	var decodeErr *models.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, models.EmptyResult, decodeErr.Kind)

	_, err = DecodeTransaction(testSig, &rpc.GetTransactionResult{})
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, models.EmptyResult, decodeErr.Kind)
}

func TestDecodeAccount(t *testing.T) {
	blockTime := solana.UnixTimeSeconds(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC).Unix())
	sigs := []*rpc.TransactionSignature{
		{Signature: testSig, Slot: 200, BlockTime: &blockTime, Err: nil},
		{Signature: testSig, Slot: 190, Err: map[string]interface{}{"InstructionError": nil}},
	}

	info := &rpc.GetAccountInfoResult{
		Value: &rpc.Account{
			Lamports: 1_500_000_000,
			Owner:    SystemProgramID,
		},
	}

	view, err := DecodeAccount(walletA, info, nil, sigs)
	require.NoError(t, err)

	assert.Equal(t, walletA, view.Address)
	assert.Equal(t, uint64(1_500_000_000), view.Lamports)
	assert.Equal(t, models.SystemAccount, view.Kind)
	assert.Equal(t, "System", view.OwnerLabel)
	assert.False(t, view.Executable)
	assert.Equal(t, 0, view.DataSize)
	assert.Empty(t, view.Holdings)

	require.Len(t, view.RecentActivity, 2)
	assert.False(t, view.RecentActivity[0].Failed)
	require.NotNil(t, view.RecentActivity[0].Time)
	assert.True(t, view.RecentActivity[1].Failed)
	assert.Nil(t, view.RecentActivity[1].Time)
}

func TestDecodeAccount_ProgramKind(t *testing.T) {
	info := &rpc.GetAccountInfoResult{
		Value: &rpc.Account{
			Lamports:   1,
			Owner:      BPFLoaderUpgradeableID,
			Executable: true,
		},
	}

	view, err := DecodeAccount(walletA, info, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ProgramAccount, view.Kind)
	assert.Equal(t, "BPF Loader Upgradeable", view.OwnerLabel)
	assert.True(t, view.Executable)
}

func TestDecodeAccount_Empty(t *testing.T) {
	_, err := DecodeAccount(walletA, nil, nil, nil)
	var decodeErr *models.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, models.EmptyResult, decodeErr.Kind)

	_, err = DecodeAccount(walletA, &rpc.GetAccountInfoResult{}, nil, nil)
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, models.EmptyResult, decodeErr.Kind)
}

func TestParseTokenHolding(t *testing.T) {
	raw := json.RawMessage(`{
		"program": "spl-token",
		"parsed": {
			"type": "account",
			"info": {
				"mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
				"tokenAmount": {"amount": "2500000", "decimals": 6, "uiAmount": 2.5}
			}
		}
	}`)

	holding, err := parseTokenHolding(raw)
	require.NoError(t, err)
	assert.Equal(t, walletB, holding.Mint)
	assert.Equal(t, uint64(2_500_000), holding.Amount)
	assert.Equal(t, uint8(6), holding.Decimals)
	assert.InDelta(t, 2.5, holding.UIAmount, 1e-9)
}

func TestParseTokenHolding_Invalid(t *testing.T) {
	_, err := parseTokenHolding(nil)
	assert.Error(t, err)

	_, err = parseTokenHolding(json.RawMessage(`{"parsed":{"info":{"mint":"not-a-key"}}}`))
	assert.Error(t, err)

	_, err = parseTokenHolding(json.RawMessage(`not json`))
	assert.Error(t, err)
}
