package commands

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"tableflip.dev/taskboard/pkg/server"
	"tableflip.dev/taskboard/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	addr := "127.0.0.1:8000"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the local task database over REST",
		Long: `Serve the task database at --path as the REST resource the remote
backend talks to. Ids are random UUIDs.`,
		Example: `
taskboard serve --addr 127.0.0.1:8000
taskboard ui --backend remote --remote-url http://127.0.0.1:8000
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := lo.Logger(false)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			local := store.NewLocal(cfg.BasePath(), log)
			local.NewID = server.NewID

			srv := server.New(local, log)
			srv.OnListening = func(a net.Addr) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task service listening on http://%s%s\n", a, store.TaskPath)
			}
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "Address to listen on.")

	topLevel.AddCommand(cmd)
}
