package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"dtl-import/core/catalog"
	"dtl-import/core/database"
	"dtl-import/core/logger"
	"dtl-import/core/netbox"
	"dtl-import/core/repo"
	"dtl-import/core/server"
	"dtl-import/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingSetting is returned by Validate when a mandatory setting is empty.
var ErrMissingSetting = errors.New("mandatory setting is not set")

// legacyEnv maps configuration keys to the variable names older deployments use.
var legacyEnv = map[string]string{
	"netbox.ignore_ssl_errors": "IGNORE_SSL_ERRORS",
	"catalog.vendors":          "VENDORS",
	"catalog.slugs":            "SLUGS",
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// NetBox holds the target API settings.
	NetBox netbox.Config `mapstructure:"netbox"`
	// Repo holds the device-type library repository settings.
	Repo repo.Config `mapstructure:"repo"`
	// Catalog holds the vendor and slug filters.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the summary archive.
	Storage storage.Config `mapstructure:"storage"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. NETBOX_URL -> netbox.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports the mandatory settings that are empty.
func (c *Config) Validate() error {
	var missing []string
	if c.NetBox.URL == "" {
		missing = append(missing, "NETBOX_URL")
	}
	if c.NetBox.Token == "" {
		missing = append(missing, "NETBOX_TOKEN")
	}
	if c.Repo.URL == "" {
		missing = append(missing, "REPO_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
