package woocommerce

// Config holds configuration for the WooCommerce REST API.
type Config struct {
	// URL is the store base URL, e.g. https://shop.example.com.
	URL string `mapstructure:"url" default:""`
	// ConsumerKey is the REST API consumer key.
	ConsumerKey string `mapstructure:"consumer_key" default:""`
	// ConsumerSecret is the REST API consumer secret.
	ConsumerSecret string `mapstructure:"consumer_secret" default:""`
	// TimeoutSeconds bounds each update request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"20"`
}
