package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/client/api"
	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/spf13/cobra"
)

const adminSecretEnv = "AZYRNYX_ADMIN_SECRET"

// adminSecret comes from the environment or, failing that, the terminal.
func (o *RootOptions) adminSecret(cmd *cobra.Command) (string, error) {
	if v := os.Getenv(adminSecretEnv); v != "" {
		return v, nil
	}
	pw, err := GetPassword(cmd.OutOrStdout(), "Admin secret: ")
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func NewAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the redeem code catalog",
		Long: `Manage the redeem code catalog.

The operator secret is read from ` + adminSecretEnv + ` or prompted for.`,
	}

	cmd.AddCommand(newAddCodeCommand(opts))
	cmd.AddCommand(newListCodesCommand(opts))

	return cmd
}

// AddCodeOptions holds flags for the add-code command.
type AddCodeOptions struct {
	*RootOptions
	Amount  int64
	Mode    string
	Expires string
}

func newAddCodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddCodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add-code <code>",
		Short: "Add or replace a redeem code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nc := api.NewCode{Code: args[0], Amount: opts.Amount, Mode: opts.Mode}
			if opts.Expires != "" {
				at, err := time.Parse(time.RFC3339, opts.Expires)
				if err != nil {
					return fmt.Errorf("invalid --expires, want RFC3339: %w", err)
				}
				nc.ExpiresAt = &at
			}

			secret, err := opts.adminSecret(cmd)
			if err != nil {
				return err
			}
			msg, err := opts.client.AddCode(cmd.Context(), secret, nc)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.Amount, "amount", 0, "shards granted by the code")
	cmd.Flags().StringVar(&opts.Mode, "mode", "per_account_once", "per_account_once or global_once")
	cmd.Flags().StringVar(&opts.Expires, "expires", "", "expiry time (RFC3339)")

	return cmd
}

func newListCodesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the redeem code catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := opts.adminSecret(cmd)
			if err != nil {
				return err
			}
			codes, err := opts.client.ListCodes(cmd.Context(), secret)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tAMOUNT\tMODE\tEXPIRES\tCONSUMED BY")
			for _, c := range codes {
				expires := "-"
				if c.ExpiresAt != nil {
					expires = c.ExpiresAt.Format(time.RFC3339)
				}
				consumed := "-"
				if c.ConsumedBy != "" {
					consumed = c.ConsumedBy
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", c.Code, c.Amount, c.Mode, expires, consumed)
			}
			return tw.Flush()
		},
	}
}
