package models

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Network selects which Solana cluster queries are sent against.
type Network int

const (
	Mainnet Network = iota
	Devnet
	Testnet

	networkCount = 3
)

func (n Network) Name() string {
	switch n {
	case Devnet:
		return "Devnet"
	case Testnet:
		return "Testnet"
	default:
		return "Mainnet"
	}
}

// Next cycles forward through the fixed network order.
func (n Network) Next() Network {
	return (n + 1) % networkCount
}

// Prev cycles backward through the fixed network order.
func (n Network) Prev() Network {
	return (n + networkCount - 1) % networkCount
}

// QueryKind classifies raw operator input.
type QueryKind int

const (
	KindInvalid QueryKind = iota
	KindSignature
	KindAddress
)

// TransactionStatus is the on-chain outcome of a transaction. Err holds
// the chain's error object rendered verbatim when Failed is set.
type TransactionStatus struct {
	Failed bool
	Err    string
}

// InstructionView is one top-level instruction of a transaction, with
// the program resolved to a label and the variant guessed from the
// leading data bytes.
type InstructionView struct {
	ProgramID    solana.PublicKey
	ProgramLabel string
	Kind         string
	DataLen      int
}

// AccountEntry pairs a transaction account with its balance movement.
// Entries keep the account-keys order of the message.
type AccountEntry struct {
	Address     solana.PublicKey
	PreBalance  uint64
	PostBalance uint64
	Delta       int64
	IsSigner    bool
	IsWritable  bool
}

// TokenTransferView is an SPL token movement found in a transaction's
// instructions. DecimalsKnown is false for plain Transfer instructions,
// which carry neither mint nor decimals.
type TokenTransferView struct {
	Mint          solana.PublicKey
	Source        solana.PublicKey
	Destination   solana.PublicKey
	Amount        uint64
	Decimals      uint8
	DecimalsKnown bool
	UIAmount      float64
}

// TransactionView is the fully decoded, display-ready form of a
// transaction.
type TransactionView struct {
	Signature      solana.Signature
	Slot           uint64
	BlockTime      *time.Time
	Status         TransactionStatus
	Fee            uint64
	PriorityFee    uint64
	ComputeUnits   uint64
	Instructions   []InstructionView
	Accounts       []AccountEntry
	TokenTransfers []TokenTransferView
	Logs           []string
}

// AccountKind is a coarse classification of an account.
type AccountKind int

const (
	SystemAccount AccountKind = iota
	ProgramAccount
	DataAccount
)

func (k AccountKind) String() string {
	switch k {
	case SystemAccount:
		return "System (wallet)"
	case ProgramAccount:
		return "Program"
	default:
		return "Data"
	}
}

// TokenHolding is one SPL token balance owned by the queried account.
type TokenHolding struct {
	Mint     solana.PublicKey
	Amount   uint64
	Decimals uint8
	UIAmount float64
}

// SignatureSummary is one entry of an account's recent transaction
// history, newest first.
type SignatureSummary struct {
	Signature solana.Signature
	Slot      uint64
	Time      *time.Time
	Failed    bool
}

// AccountView is the fully decoded, display-ready form of an account.
type AccountView struct {
	Address        solana.PublicKey
	Lamports       uint64
	Kind           AccountKind
	Owner          solana.PublicKey
	OwnerLabel     string
	Executable     bool
	RentEpoch      string
	DataSize       int
	Holdings       []TokenHolding
	RecentActivity []SignatureSummary
}
