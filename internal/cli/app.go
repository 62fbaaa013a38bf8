// Package cli is the terminal front end: a cobra command tree that mounts the banking
// and playlist shells and renders their lists, stats and error banners.
package cli

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/carson-networks/service-console/internal/apiclient"
	"github.com/carson-networks/service-console/internal/apiclient/bank"
	"github.com/carson-networks/service-console/internal/apiclient/music"
	"github.com/carson-networks/service-console/internal/config"
	"github.com/carson-networks/service-console/internal/logging"
	"github.com/carson-networks/service-console/internal/operator"
	"github.com/carson-networks/service-console/internal/refresh"
	"github.com/carson-networks/service-console/internal/views/banking"
	"github.com/carson-networks/service-console/internal/views/playlists"
)

// App carries what every command shares once configuration is loaded.
type App struct {
	out    io.Writer
	errOut io.Writer
	viper  *viper.Viper

	config    *config.Config
	logger    *logrus.Logger
	delegator *operator.OperatorDelegator
	bus       *refresh.Bus
}

func newApp(out, errOut io.Writer) *App {
	return &App{out: out, errOut: errOut, viper: viper.New()}
}

// setup loads configuration (flags bound to the app's viper win) and starts the worker pool.
func (a *App) setup() error {
	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger = logging.SetupLoggingWithOutput(a.errOut, logging.ParseLevel(cfg.LogLevel))
	a.delegator = operator.NewOperatorDelegator(a.logger, cfg.Workers)
	a.delegator.Start()
	a.bus = refresh.NewBus(a.delegator, a.logger)

	a.logger.WithFields(logrus.Fields{
		"bankApiUrl":  cfg.BankAPIURL,
		"musicApiUrl": cfg.MusicAPIURL,
		"workers":     cfg.Workers,
	}).Debug("Console.Setup")
	return nil
}

func (a *App) close() {
	if a.delegator != nil {
		a.delegator.Stop()
	}
}

func (a *App) apiClient(baseURL string) *apiclient.Client {
	return apiclient.New(baseURL, apiclient.WithLogger(a.logger), apiclient.WithTimeout(a.config.RequestTimeout))
}

func (a *App) bankClient() *bank.Client {
	return bank.NewClient(a.apiClient(a.config.BankAPIURL))
}

func (a *App) musicClient() *music.Client {
	return music.NewClient(a.apiClient(a.config.MusicAPIURL))
}

func (a *App) bankShell() *banking.Shell {
	return banking.NewShell(a.bankClient(), a.bus, a.logger)
}

func (a *App) playlistShell() *playlists.Shell {
	return playlists.NewShell(a.musicClient(), a.bus, a.logger)
}

// NewRootCommand builds the service-console command tree writing to out and errOut.
// The returned cleanup stops the worker pool and must run after execution.
func NewRootCommand(out, errOut io.Writer) (*cobra.Command, func()) {
	app := newApp(out, errOut)

	root := &cobra.Command{
		Use:   "service-console",
		Short: "service-console drives the bank and music playlist services from a terminal.",
		Long: `service-console is a terminal front end for the bank service (customers,
checking accounts, transactions, credit cards) and the music playlist service
(playlists, songs). Backends are configured with BANK_API_URL and MUSIC_API_URL.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
			return app.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String("bank-url", "", "bank service base URL (env BANK_API_URL)")
	flags.String("music-url", "", "music service base URL (env MUSIC_API_URL)")
	flags.Duration("timeout", 0, "per-request timeout (env REQUEST_TIMEOUT)")
	flags.String("log-level", "", "log level (env LOG_LEVEL)")
	flags.Int("workers", 0, "refresh worker count (env WORKERS)")
	flags.Bool("no-color", false, "disable colored output")
	for key, flag := range map[string]string{
		config.KeyBankAPIURL:     "bank-url",
		config.KeyMusicAPIURL:    "music-url",
		config.KeyRequestTimeout: "timeout",
		config.KeyLogLevel:       "log-level",
		config.KeyWorkers:        "workers",
	} {
		_ = app.viper.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newBankCommand(app))
	root.AddCommand(newMusicCommand(app))

	return root, app.close
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	root, cleanup := NewRootCommand(out, errOut)
	defer cleanup()

	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if !isReported(err) {
			banner(errOut, err.Error())
		}
		return 1
	}
	return 0
}
