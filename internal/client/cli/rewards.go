package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/client/api"
	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/spf13/cobra"
)

func NewBalanceCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the shard balance of the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts.cfg.SessionFile)
			if err != nil {
				return err
			}
			b, err := opts.client.Balance(cmd.Context(), s.Username, s.Token)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d Aether Shards\n", s.Username, b)
			return nil
		},
	}
}

func NewRedeemCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "redeem <code>",
		Short: "Redeem a code for shards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts.cfg.SessionFile)
			if err != nil {
				return err
			}
			g, err := opts.client.Redeem(cmd.Context(), s.Username, s.Token, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Balance: %d\n", g.Message, g.ShardBalance)
			return nil
		},
	}
}

// ClaimOptions holds flags for the claim command.
type ClaimOptions struct {
	*RootOptions
	Reward int64
}

func NewClaimCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClaimOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "claim <quest>",
		Short: "Claim the reward of a quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts.cfg.SessionFile)
			if err != nil {
				return err
			}
			g, err := opts.client.ClaimQuest(cmd.Context(), s.Username, s.Token, args[0], opts.Reward)
			if err != nil {
				var apiErr *api.Error
				if errors.As(err, &apiErr) && apiErr.Kind == common.KindCooldownActive && apiErr.RetryAfter > 0 {
					return fmt.Errorf("quest %s is on cooldown, try again in %s", args[0], apiErr.RetryAfter.Round(time.Second))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Balance: %d\n", g.Message, g.ShardBalance)
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.Reward, "reward", 0, "shards granted by the quest")

	return cmd
}
