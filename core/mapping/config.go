package mapping

// Config holds configuration for where the product mapping is read from.
type Config struct {
	// Source selects the backend: file, storage, or database.
	Source string `mapstructure:"source" default:"file"`
	// Path is the local file read by the file source.
	Path string `mapstructure:"path" default:"product_mapping.json"`
	// Object is the object name read from the storage bucket by the storage source.
	Object string `mapstructure:"object" default:"product_mapping.json"`
}

const (
	SourceFile     = "file"
	SourceStorage  = "storage"
	SourceDatabase = "database"
)

// IsValidSource checks if the configured source is known.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceFile, SourceStorage, SourceDatabase:
		return true
	default:
		return false
	}
}
