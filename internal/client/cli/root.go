package cli

import (
	"bufio"
	"fmt"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/client/api"
	"github.com/dmitrijs2005/azyrnyx/internal/client/config"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and what PersistentPreRunE resolves from them.
type RootOptions struct {
	ConfigFile  string
	ServerURL   string
	SessionFile string
	Timeout     time.Duration

	cfg    *config.Config
	client *api.Client
	reader *bufio.Reader
}

// NewRootCommand creates the root command of the azyrnyx CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "azyrnyx",
		Short:         "Azyrnyx shard rewards client",
		Long:          "Sign up, redeem codes and claim quests against an Azyrnyx server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "JSON config file")
	cmd.PersistentFlags().StringVarP(&opts.ServerURL, "server", "a", "", "server base URL")
	cmd.PersistentFlags().StringVar(&opts.SessionFile, "session-file", "", "where the session token is stored")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "request timeout")

	cmd.AddCommand(NewSignupCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewBalanceCommand(opts))
	cmd.AddCommand(NewRedeemCommand(opts))
	cmd.AddCommand(NewClaimCommand(opts))
	cmd.AddCommand(NewAdminCommand(opts))
	cmd.AddCommand(NewPingCommand(opts))

	return cmd
}

// resolve merges defaults, environment, the config file and explicit flags.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(o.ConfigFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = o.ServerURL
	}
	if flags.Changed("session-file") {
		cfg.SessionFile = o.SessionFile
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.Timeout
	}
	if cfg.ServerURL == "" {
		return fmt.Errorf("server URL must not be empty")
	}

	o.cfg = cfg
	o.client = api.NewClient(cfg.ServerURL, cfg.Timeout)
	o.reader = bufio.NewReader(cmd.InOrStdin())
	return nil
}

func NewPingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is up\n", opts.cfg.ServerURL)
			return nil
		},
	}
}
