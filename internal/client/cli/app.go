package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gigline/internal/client/client"
	"github.com/dmitrijs2005/gigline/internal/client/config"
	"github.com/dmitrijs2005/gigline/internal/client/credentials"
	"github.com/dmitrijs2005/gigline/internal/client/models"
	"github.com/dmitrijs2005/gigline/internal/client/services"
	"github.com/dmitrijs2005/gigline/internal/cryptox"
	"github.com/dmitrijs2005/gigline/internal/filex"
	"github.com/dmitrijs2005/gigline/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App holds the wired-up client: configuration, services, session state and
// the REPL's input reader.
//
// mode is written by the connectivity watcher goroutine and read from the
// REPL goroutine, so it is guarded by mu. Use Mode/setMode, never the field.
type App struct {
	config          *config.Config
	authService     services.AuthService
	jobService      services.JobService
	workerService   services.WorkerService
	earningsService services.EarningsService
	account         *models.Account
	reader          *bufio.Reader
	db              *sql.DB

	mu   sync.RWMutex
	mode Mode
}

// NewApp builds the full client stack: local database (with migrations),
// encryption keyfile, credential store, API client and services. The saved
// session, if any, is restored so the user stays logged in across runs.
func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewDefault()

	if _, err := filex.EnsureDir(c.DataDir); err != nil {
		log.Printf("error creating data dir: %s", err.Error())
		return nil, err
	}

	repos, err := client.InitDatabase(ctx, c.DatabasePath())
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	key, err := cryptox.LoadOrCreateKey(c.KeyfilePath())
	if err != nil {
		return nil, err
	}

	creds := credentials.NewStore(repos.Secrets, key, logger)
	creds.Load(ctx)

	apiClient := client.New(c.ServerBaseURL, creds,
		client.WithLogger(logger),
		client.WithTimeout(c.RequestTimeout),
	)

	as := services.NewAuthService(apiClient)
	js := services.NewJobService(apiClient, repos.Jobs, logger)
	ws := services.NewWorkerService(apiClient)
	es := services.NewEarningsService(apiClient)

	return &App{
		config:          c,
		authService:     as,
		jobService:      js,
		workerService:   ws,
		earningsService: es,
		reader:          bufio.NewReader(os.Stdin),
		db:              repos.DB,
	}, nil
}

// Mode reports the current connectivity mode.
func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}

// StartOnlineStatusWatcher periodically pings the backend and flips the
// app between online and offline mode accordingly. It returns when ctx is
// cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
