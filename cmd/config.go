package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/moelabs/instalytics/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		fmt.Printf("data_path: %s\n", cfg.DataPath)
		fmt.Printf("username: %s\n", cfg.Username)
		fmt.Printf("password: %s\n", mask(cfg.Password))
		fmt.Printf("listen_addr: %s\n", cfg.ListenAddr)
		fmt.Printf("session_ttl_min: %d\n", cfg.SessionTTLMin)
		fmt.Printf("debug: %v\n", cfg.Debug)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key and save the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}
		key, value := args[0], args[1]
		switch key {
		case "data_path":
			cfg.DataPath = value
		case "username":
			cfg.Username = value
		case "password":
			cfg.Password = value
		case "listen_addr":
			cfg.ListenAddr = value
		case "session_ttl_min":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid session_ttl_min: %s", value)
			}
			cfg.SessionTTLMin = n
		case "debug":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid debug: %s", value)
			}
			cfg.Debug = b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Set %s\n", key)
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
