package errors

// Generic error code definitions used as sensible defaults across modules.
const (
	CodeSystemGeneric     = "SYS-000"
	CodeNetworkGeneric    = "NET-000"
	CodeConfigGeneric     = "CFG-000"
	CodeValidationGeneric = "VAL-000"
	CodeDatabaseGeneric   = "DB-000"
)

// Distribution pipeline codes, one per fatal stage outcome.
const (
	CodeResolution          = "DIST-001"
	CodeManifest            = "DIST-002"
	CodeUnsupportedPlatform = "DIST-003"
	CodeDownload            = "DIST-004"
	CodeChecksumMismatch    = "DIST-005"
)

// Install stage codes.
const (
	CodeSubprocess = "INST-001"
)
