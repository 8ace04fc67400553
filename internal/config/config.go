package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/Lzww0608/oid"
	"github.com/Lzww0608/oid/internal/log"
)

const (
	// EnvPrefix is prepended to environment variable names, e.g. OID_STORE_DRIVER.
	EnvPrefix = "OID"
	// FileName is the config file name searched for when no file is given.
	FileName = "oid"

	OutputText = "text"
	OutputJSON = "json"

	DriverFile  = "file"
	DriverMySQL = "mysql"
)

type Config struct {
	// Prefix is used by "oid new" when no prefix argument is given.
	Prefix string      `mapstructure:"prefix"`
	Output string      `mapstructure:"output"`
	Log    log.Config  `mapstructure:"log"`
	Store  StoreConfig `mapstructure:"store"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Path   string      `mapstructure:"path"`
	MySQL  MySQLConfig `mapstructure:"mysql"`
}

// The json tags name the fields in validation errors.
type MySQLConfig struct {
	Addr     string `mapstructure:"addr" json:"addr"`
	User     string `mapstructure:"user" json:"user"`
	Password string `mapstructure:"password" json:"-"`
	Database string `mapstructure:"database" json:"database"`
}

// Load reads configuration from file and environment variables. When file
// is empty, oid.yaml is searched for in the working directory and in
// $HOME/.config/oid; a missing file is not an error in that case.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "oid"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Prefix = strings.ToLower(cfg.Prefix)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("prefix", "")
	v.SetDefault("output", OutputText)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.pretty", false)
	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.path", defaultStorePath())
	v.SetDefault("store.mysql.addr", "127.0.0.1:3306")
	v.SetDefault("store.mysql.user", "root")
	v.SetDefault("store.mysql.password", "")
	v.SetDefault("store.mysql.database", "oid")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "oid-records.json"
	}
	return filepath.Join(home, ".local", "share", "oid", "records.json")
}

// Validate checks field values after defaults and overrides are applied.
func (c Config) Validate() error {
	return validation.Errors{
		"prefix":    validation.Validate(c.Prefix, validation.By(validPrefix)),
		"output":    validation.Validate(c.Output, validation.Required, validation.In(OutputText, OutputJSON)),
		"log.level": validation.Validate(c.Log.Level, validation.In(log.Levels...)),
		"store":     c.Store.Validate(),
	}.Filter()
}

func validPrefix(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := oid.ParsePrefix(s)
	return err
}

// Validate checks the store section; MySQL settings only matter for the
// mysql driver.
func (c StoreConfig) Validate() error {
	errs := validation.Errors{
		"driver": validation.Validate(c.Driver, validation.Required, validation.In(DriverFile, DriverMySQL)),
		"path":   validation.Validate(c.Path, validation.When(c.Driver == DriverFile, validation.Required)),
	}
	if c.Driver == DriverMySQL {
		errs["mysql"] = c.MySQL.Validate()
	}
	return errs.Filter()
}

func (c MySQLConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.User, validation.Required),
		validation.Field(&c.Database, validation.Required),
	)
}
