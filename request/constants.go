package request

// Vendor API host and resource base paths. These are configuration data for
// callers building endpoint URLs; the dispatcher itself does not interpret
// them.
const (
	DefaultAPIHost = "https://api.dowjones.com"

	SnapshotsBasePath   = "/alpha/extractions/documents"
	ExtractionsBasePath = "/alpha/extractions"
	AnalyticsBasePath   = "/alpha/analytics"
	TaxonomyBasePath    = "/alpha/taxonomies"
	CompaniesBasePath   = "/alpha/companies"
)

// UserKeyHeader is the header carrying the account API key.
const UserKeyHeader = "user-key"

// DefaultStreamFileName is the destination used by streamed requests when the
// caller does not name one.
const DefaultStreamFileName = "download.tmp"
