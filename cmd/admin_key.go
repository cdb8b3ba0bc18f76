package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/service-survey/utils"
)

var adminKeyCmd = &cobra.Command{
	Use:   "admin-key [key]",
	Short: "Print a bcrypt hash for ADMIN_API_KEY",
	Long:  "Hashes the given key, or generates a random one when no key is given. Put the hash in ADMIN_API_KEY and send the plain key in the X-Admin-Key header.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdminKey,
}

func runAdminKey(cmd *cobra.Command, args []string) error {
	key := ""
	if len(args) == 1 {
		key = args[0]
	} else {
		var err error
		if key, err = utils.GenerateAdminKey(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "key:  %s\n", key)
	}

	hash, err := utils.HashSecret(key)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "hash: %s\n", hash)
	return nil
}
