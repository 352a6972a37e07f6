package models

// TransferKind is the direction of a transfer relative to the pool.
type TransferKind string

const (
	TransferIn  TransferKind = "in"  // player or owner funds the pool
	TransferOut TransferKind = "out" // pool pays a player, owner or the admin
)

// TransferInstruction is an emitted instruction to move funds. The engine
// decides only recipient and amount; the asset transfer service executes the
// movement against its ledger.
type TransferInstruction struct {
	Kind   TransferKind `json:"kind"`
	Holder string       `json:"holder"` // counterparty account; the pool is implicit
	Asset  Asset        `json:"asset"`
	Amount int64        `json:"amount"`
	Memo   string       `json:"memo,omitempty"`
}
