package contracts

// Epoch is a server-side batch of sequenced operations under one Merkle root.
type Epoch struct {
	EpochID    string `json:"epoch_id"`
	SeqStart   int64  `json:"seq_start"`
	SeqEnd     int64  `json:"seq_end"`
	MerkleRoot string `json:"merkle_root"`
	AnchoredAt *int64 `json:"anchored_at,omitempty"`
	AnchorTxid string `json:"anchor_txid,omitempty"`
}

// Anchor records where an epoch root was externally anchored.
type Anchor struct {
	Chain      string `json:"chain"`
	Txid       string `json:"txid"`
	AnchoredAt int64  `json:"anchored_at"`
}

// EpochListResponse is the body of GET /v1/epochs.
type EpochListResponse struct {
	Epochs []Epoch `json:"epochs"`
}

// EpochResponse is the body of GET /v1/epochs/{id}.
type EpochResponse struct {
	Epoch  Epoch   `json:"epoch"`
	Anchor *Anchor `json:"anchor,omitempty"`
}
