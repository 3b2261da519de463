package contracts

// Receipt is the server-issued acknowledgement of an accepted operation (EAR).
// The SDK consumes receipts; it never produces them.
type Receipt struct {
	ReceiptID        string `json:"receipt_id"`
	OperationID      string `json:"operation_id"`
	SeqNo            int64  `json:"seq_no"`
	ChainHash        string `json:"chain_hash"`
	ServerReceivedAt int64  `json:"server_received_at"`
	QueueMessageID   string `json:"queue_message_id"`
	ReceiptHash      string `json:"receipt_hash"`
	ElydoraKID       string `json:"elydora_kid"`
	ElydoraSignature string `json:"elydora_signature"`
	ReceiptVersion   string `json:"receipt_version"`
}

// SubmitOperationResponse wraps the receipt returned by POST /v1/operations.
type SubmitOperationResponse struct {
	Receipt Receipt `json:"receipt"`
}

// OperationResponse is the body of GET /v1/operations/{id}. The receipt is
// absent while the operation is still queued.
type OperationResponse struct {
	Operation OperationRecord `json:"operation"`
	Receipt   *Receipt        `json:"receipt,omitempty"`
}

// VerifyOperationResponse is the server's verdict on a stored operation.
type VerifyOperationResponse struct {
	OperationID    string         `json:"operation_id"`
	SignatureValid bool           `json:"signature_valid"`
	ChainValid     bool           `json:"chain_valid"`
	ReceiptValid   bool           `json:"receipt_valid"`
	CheckedAt      int64          `json:"checked_at"`
	Details        map[string]any `json:"details,omitempty"`
}
