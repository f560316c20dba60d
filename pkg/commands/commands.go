package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/taskboard/pkg/app"
	"tableflip.dev/taskboard/pkg/commands/options"
	"tableflip.dev/taskboard/pkg/store"
)

var (
	oo = &options.OutputOptions{}
	co = &options.ConfigOptions{}
	lo = &options.LogOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: options.Wrap80("A small task board for the terminal, backed by a local database or a REST service."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return options.BindConfigArgs(cmd.Root())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	options.AddOutputArg(cmd, oo)
	options.AddConfigArgs(cmd, co)
	options.AddLogArgs(cmd, lo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addComplete(topLevel)
	addDelete(topLevel)
	addMove(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addCompletion(topLevel)
	addVersion(topLevel)
}

// session is what a command needs to work on the configured task list.
type session struct {
	Config store.Config
	Log    *zap.Logger
	Store  *app.Store

	// Prefs is always the local database, even when tasks live remotely.
	Prefs store.Prefs
	// Watcher is nil for the remote backend.
	Watcher store.Watcher
}

// openSession loads the configuration and opens the selected backend.
// With quiet set, logging is off unless a log file was requested.
func openSession(quiet bool) (*session, error) {
	log, err := lo.Logger(quiet)
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	adapter, err := store.Open(cfg, log)
	if err != nil {
		return nil, err
	}

	s := &session{
		Config: cfg,
		Log:    log,
		Store:  app.NewStore(adapter, log),
	}
	s.Store.PersistOrder = cfg.PersistOrder()

	if local, ok := adapter.(*store.Local); ok {
		s.Prefs = local
		s.Watcher = local
	} else {
		s.Prefs = store.NewLocal(cfg.BasePath(), log)
	}
	log.Debug("opened task store",
		zap.String("backend", string(cfg.Backend())),
		zap.Bool("persistOrder", cfg.PersistOrder()))
	return s, nil
}

func (s *session) Close() {
	_ = s.Log.Sync()
}
