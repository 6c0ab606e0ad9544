package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so it can be written as "30s" or "5m" in the
// TOML file.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	d.Duration = parsed
	return nil
}

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database         DatabaseConfigs   `toml:"database"`
	ApiServer        ServerConfigs     `toml:"api_server"`
	PrometheusServer ServerConfigs     `toml:"prometheus_server"`
	Auth             AuthConfigs       `toml:"auth"`
	Redis            RedisConfigs      `toml:"redis"`
	Storage          S3Configs         `toml:"storage"`
	Email            EmailConfigs      `toml:"email"`
	File             FileConfigs       `toml:"file"`
	Blockchain       BlockchainConfigs `toml:"blockchain"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration Duration      `toml:"expiration"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Bucket         string `toml:"bucket"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type EmailConfigs struct {
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Sender    string `toml:"sender"`
}

type FileConfigs struct {
	MaxMemory int64 `toml:"max_memory"`
	MaxSize   int64 `toml:"max_size"`
}

type BlockchainConfigs struct {
	// SecretKey is the seed all platform and user wallet keys are derived
	// from. Changing it invalidates every derived wallet.
	SecretKey string `toml:"secret_key"`

	RefreshConnectionFrequency Duration `toml:"refresh_connection_frequency"`

	ReceiptPollFrequency Duration `toml:"receipt_poll_frequency"`
	ReceiptMaxRetry      int      `toml:"receipt_max_retry"`
}

// Load reads configurations from the given TOML file. Values missed by the
// file fall back to environment variables, then to defaults suitable for
// development.
func Load(path string) (Configs, error) {
	configs := defaultConfigs()
	if path != "" {
		if _, err := toml.DecodeFile(path, &configs); err != nil {
			return Configs{}, err
		}
	}

	if v := os.Getenv("DB_CONNECTION_HOST"); v != "" {
		configs.Database.Host = v
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		configs.Database.Password = v
	}

	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		configs.Auth.TokenSecret = v
	}

	if v := os.Getenv("BLOCKCHAIN_SECRET_KEY"); v != "" {
		configs.Blockchain.SecretKey = v
	}

	return configs, nil
}

func defaultConfigs() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "INFO",
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "raffler",
			User:     "raffler",
		},
		ApiServer:        ServerConfigs{Host: "0.0.0.0", Port: "8080"},
		PrometheusServer: ServerConfigs{Host: "0.0.0.0", Port: "9090"},
		Auth: AuthConfigs{
			TokenSecret: "token-secret",
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: Duration{time.Hour * 24},
			},
		},
		Redis: RedisConfigs{Addr: "localhost:6379"},
		File:  FileConfigs{MaxMemory: 2 << 20, MaxSize: 5 << 20},
		Blockchain: BlockchainConfigs{
			SecretKey:                  "blockchain-secret",
			RefreshConnectionFrequency: Duration{time.Minute * 5},
			ReceiptPollFrequency:       Duration{time.Second * 5},
			ReceiptMaxRetry:            24,
		},
	}
}
