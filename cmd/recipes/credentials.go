package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/recipegraph/internal/config"
)

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage the Neo4j password stored in the OS keychain",
	Long: `Stores the Neo4j password in the OS keychain so it never has to live in a
config or .env file. The keychain is consulted only when no password is set
through the environment or the config file.`,
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Prompt for the Neo4j password and save it to the keychain",
	RunE: func(cmd *cobra.Command, args []string) error {
		km := config.NewKeyringManager(logger)
		if !km.IsAvailable() {
			return fmt.Errorf("OS keychain not available (headless system or Linux without libsecret); use NEO4J_PASSWORD instead")
		}

		password, err := config.ReadSecret(os.Stdin, cmd.ErrOrStderr(),
			fmt.Sprintf("Neo4j password for %s: ", cfg.Neo4j.User))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if err := km.SaveNeo4jPassword(cfg.Neo4j.User, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Password for %s saved to OS keychain\n", cfg.Neo4j.User)
		return nil
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored Neo4j password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.NewKeyringManager(logger).DeleteNeo4jPassword(cfg.Neo4j.User); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Password for %s removed from OS keychain\n", cfg.Neo4j.User)
		return nil
	},
}

var credentialsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the Neo4j password is loaded from",
	RunE: func(cmd *cobra.Command, args []string) error {
		km := config.NewKeyringManager(logger)
		source := config.DescribePasswordSource(cfg, km)

		fmt.Fprintf(cmd.OutOrStdout(), "User:     %s\n", cfg.Neo4j.User)
		fmt.Fprintf(cmd.OutOrStdout(), "Source:   %s\n", source)
		fmt.Fprintf(cmd.OutOrStdout(), "Keychain: %v\n", km.IsAvailable())
		if source == config.PasswordSourceConfig {
			fmt.Fprintln(cmd.OutOrStdout(), "⚠️  Plaintext password in config. Run: recipes credentials set")
		}
		return nil
	},
}

func init() {
	credentialsCmd.AddCommand(credentialsSetCmd)
	credentialsCmd.AddCommand(credentialsDeleteCmd)
	credentialsCmd.AddCommand(credentialsStatusCmd)
}
