package netbox

// Config holds configuration for the NetBox API connection.
type Config struct {
	// URL is the base URL of the NetBox instance (without the /api suffix).
	URL string `mapstructure:"url" default:""`
	// Token is the API token used to authenticate requests.
	Token string `mapstructure:"token" default:""`
	// IgnoreSSLErrors disables TLS certificate verification.
	IgnoreSSLErrors bool `mapstructure:"ignore_ssl_errors" default:"false"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the limit requested for each page of a listing.
	PageSize int `mapstructure:"page_size" default:"1000"`
}
