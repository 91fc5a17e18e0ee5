package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddr      = ":8080"
	DefaultWindowStartHour = 8
	DefaultUTCOffsetHours  = 8
	DefaultExplorerDelay   = 250 * time.Millisecond
	DefaultPriceDelay      = time.Second
)

// KnownToken describes extra token metadata to seed the resolver with.
type KnownToken struct {
	Address  string `yaml:"address"`
	Name     string `yaml:"name"`
	Symbol   string `yaml:"symbol"`
	Decimals int32  `yaml:"decimals"`
}

// Config holds all runtime settings.
type Config struct {
	ListenAddr      string
	BscScanAPIKey   string
	BscScanURL      string
	CoinGeckoURL    string
	Wallet          string
	WindowStartHour int
	UTCOffsetHours  int
	ExplorerDelay   time.Duration
	PriceDelay      time.Duration
	KnownTokens     []KnownToken
}

type configTmp struct {
	ListenAddr      string        `yaml:"listen_addr,omitempty"`
	BscScanAPIKey   string        `yaml:"bscscan_api_key,omitempty"`
	BscScanURL      string        `yaml:"bscscan_url,omitempty"`
	CoinGeckoURL    string        `yaml:"coingecko_url,omitempty"`
	Wallet          string        `yaml:"wallet,omitempty"`
	WindowStartHour *int          `yaml:"window_start_hour,omitempty"`
	UTCOffsetHours  *int          `yaml:"utc_offset_hours,omitempty"`
	ExplorerDelay   time.Duration `yaml:"explorer_delay,omitempty"`
	PriceDelay      time.Duration `yaml:"price_delay,omitempty"`
	KnownTokens     []KnownToken  `yaml:"known_tokens,omitempty"`
}

// Get reads the configuration from a yaml file when -config is given,
// otherwise from CLI flags. BSCSCAN_API_KEY from the environment fills
// the API key when the config leaves it empty.
func Get() (*Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	listenAddr := flag.String("listen", DefaultListenAddr, "web server listen address")
	apiKey := flag.String("apikey", "", "BscScan API key")
	wallet := flag.String("wallet", "", "wallet address for a one-shot report")
	windowHour := flag.Int("windowhour", DefaultWindowStartHour, "local hour the daily window starts at")
	utcOffset := flag.Int("utcoffset", DefaultUTCOffsetHours, "UTC offset in hours of the report timezone")
	flag.Parse()

	var cfg *Config
	if *configPath != "" {
		var err error
		cfg, err = getYaml(*configPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &Config{
			ListenAddr:      *listenAddr,
			BscScanAPIKey:   *apiKey,
			Wallet:          *wallet,
			WindowStartHour: *windowHour,
			UTCOffsetHours:  *utcOffset,
		}
	}
	// one-shot flag works together with a yaml config too
	if cfg.Wallet == "" {
		cfg.Wallet = *wallet
	}

	cfg.applyDefaults()

	if cfg.BscScanAPIKey == "" {
		cfg.BscScanAPIKey = os.Getenv("BSCSCAN_API_KEY")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFile loads the configuration from a yaml file, bypassing flags.
func FromFile(path string) (*Config, error) {
	cfg, err := getYaml(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if cfg.BscScanAPIKey == "" {
		cfg.BscScanAPIKey = os.Getenv("BSCSCAN_API_KEY")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getYaml(path string) (*Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return nil, fmt.Errorf("incorrect yaml config %s: %w", path, err)
	}

	cfg := &Config{
		ListenAddr:      tmp.ListenAddr,
		BscScanAPIKey:   tmp.BscScanAPIKey,
		BscScanURL:      tmp.BscScanURL,
		CoinGeckoURL:    tmp.CoinGeckoURL,
		Wallet:          tmp.Wallet,
		WindowStartHour: DefaultWindowStartHour,
		UTCOffsetHours:  DefaultUTCOffsetHours,
		ExplorerDelay:   tmp.ExplorerDelay,
		PriceDelay:      tmp.PriceDelay,
		KnownTokens:     tmp.KnownTokens,
	}
	if tmp.WindowStartHour != nil {
		cfg.WindowStartHour = *tmp.WindowStartHour
	}
	if tmp.UTCOffsetHours != nil {
		cfg.UTCOffsetHours = *tmp.UTCOffsetHours
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.ExplorerDelay == 0 {
		c.ExplorerDelay = DefaultExplorerDelay
	}
	if c.PriceDelay == 0 {
		c.PriceDelay = DefaultPriceDelay
	}
}

func (c *Config) validate() error {
	if c.WindowStartHour < 0 || c.WindowStartHour > 23 {
		return fmt.Errorf("incorrect 'window_start_hour' param: %d, must be in [0, 23]", c.WindowStartHour)
	}
	if c.UTCOffsetHours < -12 || c.UTCOffsetHours > 14 {
		return fmt.Errorf("incorrect 'utc_offset_hours' param: %d", c.UTCOffsetHours)
	}
	if c.Wallet != "" && !common.IsHexAddress(c.Wallet) {
		return fmt.Errorf("incorrect 'wallet' param: %s", c.Wallet)
	}
	for _, t := range c.KnownTokens {
		if !common.IsHexAddress(t.Address) {
			return fmt.Errorf("incorrect known token address: %s", t.Address)
		}
		if t.Decimals < 0 || t.Decimals > 77 {
			return fmt.Errorf("incorrect decimals for known token %s: %d", t.Address, t.Decimals)
		}
	}
	return nil
}

// Location returns the fixed-offset timezone the daily window is anchored to.
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.UTCOffsetHours), c.UTCOffsetHours*3600)
}
