package ikctl

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/spf13/cobra"
)

func newUserCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserCreateCommand(c))
	return cmd
}

func newUserCreateCommand(c *cli) *cobra.Command {
	var (
		password string
		generate bool
	)

	cmd := &cobra.Command{
		Use:   "create <user-id>",
		Short: "Create a user account",
		Long:  "Create a user account. Without --password the password is read from the terminal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]
			out := cmd.OutOrStdout()

			var pw []byte
			switch {
			case password != "":
				pw = []byte(password)
			case generate:
				s, err := common.MakeRandHexString(12)
				if err != nil {
					return err
				}
				pw = []byte(s)
				fmt.Fprintf(out, "generated password: %s\n", s)
			default:
				read, err := GetPassword(out, "Password for "+userID+": ")
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				pw = read
			}
			defer common.WipeByteArray(pw)

			svc, closeDB, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			if _, err := svc.Auth.Register(cmd.Context(), userID, string(pw)); err != nil {
				if errors.Is(err, common.ErrorAlreadyExists) {
					return fmt.Errorf("user %q already exists", userID)
				}
				return err
			}

			fmt.Fprintf(out, "user %q created\n", userID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	cmd.Flags().BoolVar(&generate, "generate-password", false, "generate and print a random password")
	return cmd
}
