package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

func Use() *Configuration {
	return singleton()
}

// LoadEnv loads the given env files from the working directory, falling back
// to the module root (the nearest parent containing go.mod) so tests run from
// package directories still pick up the repo-level files.
func LoadEnv(envFiles []string) (int, error) {
	existing := resolveExisting(envFiles)
	if len(existing) == 0 {
		if root, ok := findModuleRoot(); ok {
			prefixed := make([]string, 0, len(envFiles))
			for _, f := range envFiles {
				prefixed = append(prefixed, filepath.Join(root, f))
			}
			existing = resolveExisting(prefixed)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func resolveExisting(files []string) []string {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	return existing
}

func findModuleRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"backoffice"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type Configuration struct {
	Database DatabaseOptions

	ServerPort       int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"error"`

	// HS256 key shared with the external session issuer.
	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev-secret"`

	// Local directory task-completion artifacts are written to.
	ArtifactsPath string `env:"ARTIFACTS_PATH" envDefault:"static/artifacts"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`

	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	RealIPHeader    string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logger *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	c.Database.Opts = c.Database.ConnectionString()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(c.LogrusLogLevel())
	if c.GoAppEnvironment == Production {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	c.logger = logger
	return nil
}
