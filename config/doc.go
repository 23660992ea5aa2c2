// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment, using viper and godotenv.
//
//	var cfg httpclient.FileConfig
//	err := config.LoadConfig("billing-client", &cfg,
//	    config.WithEnvPrefix("NETC"),
//	)
//
// Every key declared through mapstructure tags on the target struct can be
// overridden from the environment by upper-casing its dotted path and
// replacing dots with underscores: http.base_url becomes NETC_HTTP_BASE_URL.
// Values from the .env file never override variables already set.
package config
