package contracts

// Export job states.
const (
	ExportStatusPending = "pending"
	ExportStatusReady   = "ready"
	ExportStatusFailed  = "failed"
)

// ExportRequest asks the platform to assemble a verifiable export of the
// operations matching the filter.
type ExportRequest struct {
	AgentID       string `json:"agent_id,omitempty"`
	OperationType string `json:"operation_type,omitempty"`
	FromMs        int64  `json:"from_ms,omitempty"`
	ToMs          int64  `json:"to_ms,omitempty"`
	Format        string `json:"format,omitempty"`
}

// Export describes an export job.
type Export struct {
	ExportID    string `json:"export_id"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
	CompletedAt *int64 `json:"completed_at,omitempty"`
}

// ExportCreateResponse is the body of POST /v1/exports.
type ExportCreateResponse struct {
	Export Export `json:"export"`
}

// ExportListResponse is the body of GET /v1/exports.
type ExportListResponse struct {
	Exports []Export `json:"exports"`
}

// ExportResponse is the body of GET /v1/exports/{id}. DownloadURL is present
// once the job is ready.
type ExportResponse struct {
	Export      Export `json:"export"`
	DownloadURL string `json:"download_url,omitempty"`
}
