package di

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/registrar/core"
	"github.com/trezcool/registrar/core/auth"
	"github.com/trezcool/registrar/core/locale"
	"github.com/trezcool/registrar/core/prefs"
	"github.com/trezcool/registrar/core/router"
	"github.com/trezcool/registrar/core/session"
	"github.com/trezcool/registrar/core/toast"
	backendsvc "github.com/trezcool/registrar/services/backend"
	logsvc "github.com/trezcool/registrar/services/logger"
	"github.com/trezcool/registrar/storage/database"
	inmemdb "github.com/trezcool/registrar/storage/database/inmem"
	sqlxrepos "github.com/trezcool/registrar/storage/database/sqlx"
)

const pingAttempts = 5

// Container holds every long lived dependency of a registrar process.
type Container struct {
	Conf        *core.Config
	Logger      core.Logger
	DB          *sqlx.DB // nil with the memory engine
	KV          core.KVStore
	Validate    *validator.Validate
	Translators *locale.Translators
	Session     *session.Store
	Locale      *locale.Store
	Prefs       *prefs.Store
	Router      *router.Router
	Toasts      *toast.Center
	Client      *backendsvc.Client
}

// NewLogger returns the process logger. Rollbar reporting is off in debug mode.
func NewLogger(conf *core.Config, prefix string, out io.Writer) core.Logger {
	std := log.New(out, prefix+" : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newKVStore(conf *core.Config) (core.KVStore, *sqlx.DB, error) {
	if conf.Storage.Engine == database.EngineMemory {
		return inmemdb.NewKVRepository(), nil, nil
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, nil, err
	}
	if err = database.Ping(db, pingAttempts); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err = database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return sqlxrepos.NewKVRepository(db), db, nil
}

// NewContainer opens the client storage, restores the persisted stores and wires the backend client.
func NewContainer(ctx context.Context, conf *core.Config, logger core.Logger, opts ...backendsvc.Option) (*Container, error) {
	c := &Container{Conf: conf, Logger: logger}

	var err error
	if c.KV, c.DB, err = newKVStore(conf); err != nil {
		return nil, errors.Wrap(err, "setting up storage")
	}

	c.Validate = validator.New()
	if c.Translators, err = locale.NewTranslators(c.Validate); err != nil {
		return nil, c.fail(err, "setting up translators")
	}
	auth.RegisterValidators(c.Validate, c.Translators.Translator(locale.English), c.Translators.Translator(locale.Arabic))

	if c.Session, err = session.NewStore(ctx, c.KV, logger); err != nil {
		return nil, c.fail(err, "restoring session")
	}
	if c.Locale, err = locale.NewStore(ctx, c.KV, c.Translators, logger, locale.Lang(conf.DefaultLang)); err != nil {
		return nil, c.fail(err, "restoring language")
	}
	if c.Prefs, err = prefs.NewStore(ctx, c.KV, logger); err != nil {
		return nil, c.fail(err, "restoring preferences")
	}

	c.Router = router.NewRouter(router.DefaultTable(), c.Session, logger)
	c.Toasts = toast.NewCenter(c.Translators)

	opts = append([]backendsvc.Option{backendsvc.WithValidator(c.Validate)}, opts...)
	if c.Client, err = backendsvc.NewClient(conf, c.Session, c.Router, c.Toasts, logger, opts...); err != nil {
		return nil, c.fail(err, "setting up backend client")
	}

	logger.Debug(fmt.Sprintf("container ready: storage %q, language %q", conf.Storage.Engine, c.Locale.Lang()))
	return c, nil
}

func (c *Container) fail(err error, msg string) error {
	if cErr := c.Close(); cErr != nil {
		c.Logger.Error("closing storage", cErr)
	}
	return errors.Wrap(err, msg)
}

// Close releases the storage connection, if any.
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return errors.Wrap(c.DB.Close(), "closing database")
}
