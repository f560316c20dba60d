package options

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/taskboard/pkg/store"
)

// ConfigOptions are the persistence flags; each one overrides the viper key
// of the same concern when set.
type ConfigOptions struct {
	Backend      string
	Path         string
	RemoteURL    string
	PersistOrder bool
}

func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.Backend, "backend", string(store.BackendLocal),
		`Persistence backend, "local" or "remote".`)
	flags.StringVar(&o.Path, "path", store.DefaultPath,
		"Directory of the local task database.")
	flags.StringVar(&o.RemoteURL, "remote-url", store.DefaultRemoteURL,
		"Base URL of the remote task service.")
	flags.BoolVar(&o.PersistOrder, "persist-order", false,
		Wrap80("Save the list after a reorder. Only the local backend can keep the order."))
}

// BindConfigArgs lets the flags registered by AddConfigArgs override the
// configuration file and environment.
func BindConfigArgs(cmd *cobra.Command) error {
	bindings := map[string]string{
		store.KeyBackend:      "backend",
		store.KeyPath:         "path",
		store.KeyRemoteURL:    "remote-url",
		store.KeyPersistOrder: "persist-order",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}
