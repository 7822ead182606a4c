package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/redbco/graphschema/internal/config"
	"github.com/redbco/graphschema/pkg/database"
)

func (o *options) credentials() (*database.CredentialsManager, error) {
	cfg := config.Default()
	if o.config != "" {
		loaded, err := config.Load(o.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return cfg.Credentials()
}

// readPassword prompts on a terminal and otherwise reads the first line of in
func readPassword(cmd *cobra.Command, in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}

func newCredentialsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage graph passwords in the keyring",
		Long: "Store and remove the backend passwords that graph contexts reference with password_keyring. " +
			"The keyring backend is taken from --config. A file keyring is unlocked with GRAPHSCHEMA_KEYRING_PASSWORD.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [service/user]",
		Short: "Store a password, read from the terminal or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			password, err := readPassword(cmd, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := creds.Store(args[0], password); err != nil {
				return fmt.Errorf("failed to store password %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored password %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete [service/user]",
		Aliases: []string{"rm"},
		Short:   "Remove a stored password",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := opts.credentials()
			if err != nil {
				return err
			}
			if err := creds.Remove(args[0]); err != nil {
				return fmt.Errorf("failed to delete password %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted password %s\n", args[0])
			return nil
		},
	})

	return cmd
}
