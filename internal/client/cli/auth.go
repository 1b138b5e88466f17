package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/azyrnyx/internal/client/api"
	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/spf13/cobra"
)

// credentials takes the username from args or asks for it, then reads the
// secret without echo.
func (o *RootOptions) credentials(cmd *cobra.Command, args []string) (string, string, error) {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		u, err := GetSimpleText(o.reader, "Username", cmd.OutOrStdout())
		if err != nil {
			return "", "", err
		}
		username = u
	}

	pw, err := GetPassword(cmd.OutOrStdout(), "Secret: ")
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(pw)

	return username, string(pw), nil
}

func (o *RootOptions) startSession(cmd *cobra.Command, username string, auth func(ctx context.Context, u, s string) (*api.Session, error), secret string) (*api.Session, error) {
	s, err := auth(cmd.Context(), username, secret)
	if err != nil {
		return nil, err
	}
	err = saveSession(o.cfg.SessionFile, &Session{ServerURL: o.cfg.ServerURL, Username: username, Token: s.Token})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func NewSignupCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signup [username]",
		Short: "Create an account and log in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, secret, err := opts.credentials(cmd, args)
			if err != nil {
				return err
			}
			s, err := opts.startSession(cmd, username, opts.client.Signup, secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s (%d Aether Shards)\n", username, s.ShardBalance)
			return nil
		},
	}
}

func NewLoginCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and remember the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, secret, err := opts.credentials(cmd, args)
			if err != nil {
				return err
			}
			s, err := opts.startSession(cmd, username, opts.client.Login, secret)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%d Aether Shards)\n", username, s.ShardBalance)
			return nil
		},
	}
}

func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := removeSession(opts.cfg.SessionFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
