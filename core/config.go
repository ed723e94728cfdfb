package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	APIConfig struct {
		Endpoint string
		Timeout  time.Duration
	}

	StorageConfig struct {
		Engine     string // sqlite3 (default), postgres, memory
		Path       string // sqlite3 database file
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	PortalConfig struct {
		Host            string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	Config struct {
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		WorkDir      string
		DefaultLang  string
		RollbarToken string

		API     APIConfig
		Storage StorageConfig
		Portal  PortalConfig
	}
)

// Address returns the host:port of a networked storage engine.
func (sc StorageConfig) Address() string {
	if sc.Port == "" {
		return sc.Host
	}
	return sc.Host + ":" + sc.Port
}

// NewConfig loads the configuration from defaults, the optional `.env` file at the project root
// (the one written by `registrar setenv`) and REGISTRAR_* environment variables.
func NewConfig() *Config {
	v := viper.New()
	wd := Getwd()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "Registrar")
	v.SetDefault("defaultLang", "ar")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("api.endpoint", "http://localhost:8000/")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("storage.engine", "sqlite3")
	v.SetDefault("storage.path", filepath.Join(wd, "data", "registrar.db"))
	v.SetDefault("storage.host", "localhost")
	v.SetDefault("storage.port", "5432")
	v.SetDefault("storage.name", "registrar")
	v.SetDefault("storage.user", "")
	v.SetDefault("storage.password", "")
	v.SetDefault("storage.disableTLS", false)
	v.SetDefault("portal.host", "127.0.0.1:8080")
	v.SetDefault("portal.shutdownTimeout", 5*time.Second)
	v.SetDefault("portal.disableReqLogs", false)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, ".env")
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	// .env.frontend files of the web build use VITE_ names; REGISTRAR_API_ENDPOINT still wins
	if endpoint := os.Getenv("VITE_API_ENDPOINT"); endpoint != "" {
		v.SetDefault("api.endpoint", endpoint)
	}

	v.SetEnvPrefix("REGISTRAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("appName"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		WorkDir:      wd,
		DefaultLang:  v.GetString("defaultLang"),
		RollbarToken: v.GetString("rollbarToken"),
		API: APIConfig{
			Endpoint: v.GetString("api.endpoint"),
			Timeout:  v.GetDuration("api.timeout"),
		},
		Storage: StorageConfig{
			Engine:     v.GetString("storage.engine"),
			Path:       v.GetString("storage.path"),
			Host:       v.GetString("storage.host"),
			Port:       v.GetString("storage.port"),
			Name:       v.GetString("storage.name"),
			User:       v.GetString("storage.user"),
			Password:   v.GetString("storage.password"),
			DisableTLS: v.GetBool("storage.disableTLS"),
		},
		Portal: PortalConfig{
			Host:            v.GetString("portal.host"),
			ShutdownTimeout: v.GetDuration("portal.shutdownTimeout"),
			DisableReqLogs:  v.GetBool("portal.disableReqLogs"),
		},
	}
}
