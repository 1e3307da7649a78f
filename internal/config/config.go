package config

import (
	"encoding/json"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"tpv_pos/internal/till"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Catalog CatalogConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type StorageConfig struct {
	DataFile string
}

type CatalogConfig struct {
	File string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "tpv-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8081")
	viper.SetDefault("DATA_FILE", "till_session.json")
	viper.SetDefault("CATALOG_FILE", "")

	return &Config{
		App: AppConfig{
			Name: viper.GetString("APP_NAME"),
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		Storage: StorageConfig{
			DataFile: viper.GetString("DATA_FILE"),
		},
		Catalog: CatalogConfig{
			File: viper.GetString("CATALOG_FILE"),
		},
	}
}

type catalogEntry struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Products returns the configured price list. When no catalog file is set,
// or the file cannot be read or parsed, the built-in list is used.
func (c *CatalogConfig) Products() []till.Product {
	if c.File == "" {
		return till.DefaultProducts()
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		log.Printf("Warning: cannot read catalog file %s, using built-in catalog: %v", c.File, err)
		return till.DefaultProducts()
	}

	var entries []catalogEntry
	if err := json.Unmarshal(data, &entries); err != nil || len(entries) == 0 {
		log.Printf("Warning: invalid catalog file %s, using built-in catalog", c.File)
		return till.DefaultProducts()
	}

	products := make([]till.Product, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Name == "" || e.Price.IsNegative() {
			log.Printf("Warning: skipping invalid catalog entry %q", e.ID)
			continue
		}
		products = append(products, till.Product{ID: e.ID, Name: e.Name, Price: e.Price})
	}
	if len(products) == 0 {
		return till.DefaultProducts()
	}
	return products
}
