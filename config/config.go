package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "BABYFOOD"

type Config struct {
	Storage  StorageConfig
	Calendar CalendarConfig
	Library  LibraryConfig
	Log      LogConfig
}

type StorageConfig struct {
	Driver      string // file, postgres or memory
	Dir         string
	Key         string
	Watch       bool
	PostgresDSN string
}

type CalendarConfig struct {
	Timezone  string
	WeekStart string
}

type LibraryConfig struct {
	CSV string
}

type LogConfig struct {
	Level    string
	Dir      string // daily log files are written here when set
	Name     string
	Elk      ElkConfig
	Logstash LogstashConfig
}

type ElkConfig struct {
	Enable bool
	URL    string
	Index  string
}

type LogstashConfig struct {
	Enable bool
	URL    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", "data")
	v.SetDefault("storage.key", "babyFoodEntries")
	v.SetDefault("storage.watch", false)
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("calendar.timezone", "Local")
	v.SetDefault("calendar.week_start", "sunday")
	v.SetDefault("library.csv", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.name", "babyfood")
	v.SetDefault("log.elk.enable", false)
	v.SetDefault("log.elk.url", "")
	v.SetDefault("log.elk.index", "babyfood")
	v.SetDefault("log.logstash.enable", false)
	v.SetDefault("log.logstash.url", "")
}

// Load reads .env (if any), then config.yml from path or the working
// directory. Environment variables such as BABYFOOD_STORAGE_DRIVER override
// the file; without a file they are the only source.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	dsn := v.GetString("storage.postgres_dsn")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}

	cfg := &Config{
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("storage.driver")),
			Dir:         v.GetString("storage.dir"),
			Key:         v.GetString("storage.key"),
			Watch:       v.GetBool("storage.watch"),
			PostgresDSN: dsn,
		},
		Calendar: CalendarConfig{
			Timezone:  v.GetString("calendar.timezone"),
			WeekStart: v.GetString("calendar.week_start"),
		},
		Library: LibraryConfig{
			CSV: v.GetString("library.csv"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			Dir:   v.GetString("log.dir"),
			Name:  v.GetString("log.name"),
			Elk: ElkConfig{
				Enable: v.GetBool("log.elk.enable"),
				URL:    v.GetString("log.elk.url"),
				Index:  v.GetString("log.elk.index"),
			},
			Logstash: LogstashConfig{
				Enable: v.GetBool("log.logstash.enable"),
				URL:    v.GetString("log.logstash.url"),
			},
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file":
		if c.Storage.Dir == "" {
			return errors.New("storage.dir is required for the file driver")
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn (or DATABASE_URL) is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if _, err := c.Calendar.Location(); err != nil {
		return err
	}
	if _, err := c.Calendar.FirstWeekday(); err != nil {
		return err
	}
	return nil
}

func (c CalendarConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("calendar.timezone: %w", err)
	}
	return loc, nil
}

func (c CalendarConfig) FirstWeekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.WeekStart, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("calendar.week_start: unknown weekday %q", c.WeekStart)
}
