package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/HTYISABUG/tgbot-hydrate/src/keychain"
	"github.com/HTYISABUG/tgbot-hydrate/src/server"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tgbot-hydrate",
		Short: "Telegram bot whose handlers act on hydrated entities",
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			glog.Flush()
		},
	}

	// glog registers its flags on the standard flag set.
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cmd.AddCommand(newServeCommand(), newTokenCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	var settingPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			setting, err := server.LoadSetting(settingPath)
			if err != nil {
				return err
			}

			s, err := server.NewServer(setting)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = s.Run(ctx)
			glog.Infoln("Server stopped")
			return err
		},
	}

	cmd.Flags().StringVarP(&settingPath, "config", "c", "settings.json", "Path to the JSON settings file")
	return cmd
}

func newTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the bot token stored in the system keychain",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <token>",
			Short: "Store the bot token",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return keychain.SetToken(args[0])
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Remove the stored bot token",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return keychain.DeleteToken()
			},
		},
	)

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
