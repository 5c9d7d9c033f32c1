package shared

const (
	RequestID = "request_id"

	// Field length bounds applied before validation.
	MaxNameLen   = 100
	MaxReasonLen = 1000
	MaxMasterLen = 100

	// Subject used for a master click when no master name was sent.
	UnknownMaster = "unknown"
)
