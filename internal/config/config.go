// Package config defines the application configuration and its loader.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Search   SearchConfig   `mapstructure:"search"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// FrontURL is the base URL of the web client, used to build the
	// email-verification link.
	FrontURL string `mapstructure:"front_url" validate:"omitempty,url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains token signing and lifetime settings.
type AuthConfig struct {
	JWTSecret                 string `mapstructure:"jwt_secret"                   validate:"required,min=32"`
	TokenLifetimeMinutes      int    `mapstructure:"token_lifetime_minutes"       validate:"required,gt=0"`
	EmailTokenLifetimeMinutes int    `mapstructure:"email_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                int    `mapstructure:"bcrypt_cost"                  validate:"omitempty,gte=4,lte=31"`
}

// AWSConfig contains settings for the S3 photo bucket and SES mailer.
// Credentials resolve through the default AWS chain when left empty.
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	S3Bucket        string `mapstructure:"s3_bucket"`
	SystemEmail     string `mapstructure:"system_email" validate:"omitempty,email"`
}

// SearchConfig contains settings for the POI search index.
type SearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	CloudID   string   `mapstructure:"cloud_id"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	PoiIndex  string   `mapstructure:"poi_index"`
}
