package dto

// ── external sync module DTOs ──

// SyncStatusResponse reports feed connectivity and the last run outcome.
type SyncStatusResponse struct {
	Connected  bool    `json:"connected"`
	LastSyncAt *string `json:"last_sync_at,omitempty"`
	LastError  *string `json:"last_error,omitempty"`
}

// SyncSummaryResponse is the reconciliation outcome. A second run against an
// unchanged feed reports all zeroes.
type SyncSummaryResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
}
