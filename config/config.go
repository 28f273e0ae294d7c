package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/dev-tanmaydas/custos/api/model"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Neo4j         DatabaseConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	Access        AccessConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port string
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	URI string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr            string
	DefaultCacheTTL string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

// AccessConfiguration stores the permission evaluation settings: which
// backend resolves permissions documents, whether resolved documents are
// cached in Redis across sessions, and the tier semantics switch.
type AccessConfiguration struct {
	// Backend selects the permissions store: "elasticsearch" or "neo4j".
	Backend string
	// Index is the Elasticsearch index holding permissions documents.
	Index string
	// CacheEnabled turns on the Redis read-through cache in front of the
	// backend.
	CacheEnabled bool
	// LegacyTierUnion keeps the compatibility semantics where a broader
	// tier also consults the actor lists of more-privileged tiers. Callers
	// depend on this; flipping it to false makes each tier consult only
	// its own fields.
	LegacyTierUnion bool
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config") // path to look for the config file in
	viper.SetConfigName("config") // name of the config file (without extension)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv() // read in environment variables that match

	// Set default configurations
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("log.file", "")

	viper.SetDefault("access.backend", "elasticsearch")
	viper.SetDefault("access.index", "permissions")
	viper.SetDefault("access.cacheEnabled", true)
	viper.SetDefault("access.legacyTierUnion", true)

	viper.SetDefault("access.fields.discoverUsers", "discover_users")
	viper.SetDefault("access.fields.discoverGroups", "discover_groups")
	viper.SetDefault("access.fields.readUsers", "read_users")
	viper.SetDefault("access.fields.readGroups", "read_groups")
	viper.SetDefault("access.fields.downloadUsers", "download_users")
	viper.SetDefault("access.fields.downloadGroups", "download_groups")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	// Unmarshal the configuration into the Configuration struct
	err := viper.Unmarshal(&config)
	if err != nil {
		return err
	}

	return nil
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// Access returns the permission evaluation settings.
func Access() AccessConfiguration {
	return AccessConfiguration{
		Backend:         viper.GetString("access.backend"),
		Index:           viper.GetString("access.index"),
		CacheEnabled:    viper.GetBool("access.cacheEnabled"),
		LegacyTierUnion: viper.GetBool("access.legacyTierUnion"),
	}
}

// Fields returns the configured tier field mapping. The mapping is resolved
// once here and handed to the resolver and evaluator as a plain struct;
// nothing below the config package reads viper for it.
func Fields() model.FieldMapping {
	return model.FieldMapping{
		DiscoverUsers:  viper.GetString("access.fields.discoverUsers"),
		DiscoverGroups: viper.GetString("access.fields.discoverGroups"),
		ReadUsers:      viper.GetString("access.fields.readUsers"),
		ReadGroups:     viper.GetString("access.fields.readGroups"),
		DownloadUsers:  viper.GetString("access.fields.downloadUsers"),
		DownloadGroups: viper.GetString("access.fields.downloadGroups"),
	}
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}
