package solana

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Well-known program ids.
var (
	SystemProgramID          = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	TokenProgramID           = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	Token2022ProgramID       = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	AssociatedTokenProgramID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	MemoProgramID            = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
	MemoLegacyProgramID      = solana.MustPublicKeyFromBase58("Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo")
	ComputeBudgetProgramID   = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")
	VoteProgramID            = solana.MustPublicKeyFromBase58("Vote111111111111111111111111111111111111111")
	StakeProgramID           = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
	ConfigProgramID          = solana.MustPublicKeyFromBase58("Config1111111111111111111111111111111111111")
	AddressLookupTableID     = solana.MustPublicKeyFromBase58("AddressLookupTab1e1111111111111111111111111")
	BPFLoaderID              = solana.MustPublicKeyFromBase58("BPFLoader2111111111111111111111111111111111")
	BPFLoaderUpgradeableID   = solana.MustPublicKeyFromBase58("BPFLoaderUpgradeab1e11111111111111111111111")
	Ed25519SigVerifyID       = solana.MustPublicKeyFromBase58("Ed25519SigVerify111111111111111111111111111")
	Secp256k1SigVerifyID     = solana.MustPublicKeyFromBase58("KeccakSecp256k11111111111111111111111111111")
)

var programLabels = map[solana.PublicKey]string{
	SystemProgramID:          "System",
	TokenProgramID:           "Token",
	Token2022ProgramID:       "Token-2022",
	AssociatedTokenProgramID: "Associated Token Account",
	MemoProgramID:            "Memo",
	MemoLegacyProgramID:      "Memo (legacy)",
	ComputeBudgetProgramID:   "Compute Budget",
	VoteProgramID:            "Vote",
	StakeProgramID:           "Stake",
	ConfigProgramID:          "Config",
	AddressLookupTableID:     "Address Lookup Table",
	BPFLoaderID:              "BPF Loader",
	BPFLoaderUpgradeableID:   "BPF Loader Upgradeable",
	Ed25519SigVerifyID:       "Ed25519 SigVerify",
	Secp256k1SigVerifyID:     "Secp256k1 SigVerify",
}

// ProgramLabel resolves a program id to a display label. Ids outside
// the table come back as "Unknown"; resolution never fails.
func ProgramLabel(id solana.PublicKey) string {
	if label, ok := programLabels[id]; ok {
		return label
	}
	return "Unknown"
}

// System program instructions use a u32 little-endian discriminator.
var systemInstructionNames = []string{
	"CreateAccount",
	"Assign",
	"Transfer",
	"CreateAccountWithSeed",
	"AdvanceNonceAccount",
	"WithdrawNonceAccount",
	"InitializeNonceAccount",
	"AuthorizeNonceAccount",
	"Allocate",
	"AllocateWithSeed",
	"AssignWithSeed",
	"TransferWithSeed",
	"UpgradeNonceAccount",
}

// SPL Token instructions use a single u8 discriminator; Token-2022
// shares the numbering.
var tokenInstructionNames = []string{
	"InitializeMint",
	"InitializeAccount",
	"InitializeMultisig",
	"Transfer",
	"Approve",
	"Revoke",
	"SetAuthority",
	"MintTo",
	"Burn",
	"CloseAccount",
	"FreezeAccount",
	"ThawAccount",
	"TransferChecked",
	"ApproveChecked",
	"MintToChecked",
	"BurnChecked",
	"InitializeAccount2",
	"SyncNative",
	"InitializeAccount3",
	"InitializeMultisig2",
	"InitializeMint2",
}

var computeBudgetInstructionNames = []string{
	"RequestUnits",
	"RequestHeapFrame",
	"SetComputeUnitLimit",
	"SetComputeUnitPrice",
	"SetLoadedAccountsDataSizeLimit",
}

// Discriminators the decoder matches on directly.
const (
	systemTransfer       = uint32(2)
	tokenTransfer        = uint8(3)
	tokenTransferChecked = uint8(12)
)

// InstructionKind guesses the instruction variant from the leading
// discriminator bytes. Unknown programs, unknown variants and truncated
// data all degrade to "Unknown"; this never fails.
func InstructionKind(programID solana.PublicKey, data []byte) string {
	switch programID {
	case SystemProgramID:
		if len(data) >= 4 {
			if idx := binary.LittleEndian.Uint32(data[:4]); idx < uint32(len(systemInstructionNames)) {
				return systemInstructionNames[idx]
			}
		}
	case TokenProgramID, Token2022ProgramID:
		if len(data) >= 1 && int(data[0]) < len(tokenInstructionNames) {
			return tokenInstructionNames[data[0]]
		}
	case ComputeBudgetProgramID:
		if len(data) >= 1 && int(data[0]) < len(computeBudgetInstructionNames) {
			return computeBudgetInstructionNames[data[0]]
		}
	case MemoProgramID, MemoLegacyProgramID:
		return "Memo"
	}
	return "Unknown"
}
