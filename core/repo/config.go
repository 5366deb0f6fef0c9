package repo

// Config holds the device-type library repository settings.
type Config struct {
	// URL is the git remote of the library.
	URL string `mapstructure:"url" default:"https://github.com/netbox-community/devicetype-library.git"`
	// Branch is the branch checked out before importing.
	Branch string `mapstructure:"branch" default:"master"`
	// Path is the local checkout directory.
	Path string `mapstructure:"path" default:"./repo"`
}
