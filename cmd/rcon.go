package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/haveachin/q3tool/pkg/q3"
	"github.com/spf13/cobra"
)

var (
	rconPassword    = ""
	logRconPassword = false

	rconCmd = &cobra.Command{
		Use:   "rcon <host:port> <command...>",
		Short: "Executes a remote console command on a server",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := clientConfig()
			if err != nil {
				return err
			}
			cfg.Password = rconPassword
			if cfg.Password == "" {
				// The env var keeps the password out of the process list.
				cfg.Password = os.Getenv(envVarPrefix + "RCON_PASSWORD")
			}
			cfg.LogRconPassword = logRconPassword

			c := q3.NewClient(args[0], cfg)
			resp, err := c.Rcon(cmd.Context(), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}

			resp = strings.TrimPrefix(resp, "print\n")
			fmt.Fprint(cmd.OutOrStdout(), resp)
			if !strings.HasSuffix(resp, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
)

func init() {
	rconCmd.Flags().StringVarP(&rconPassword, "password", "p", rconPassword, "rcon password of the server (env "+envVarPrefix+"RCON_PASSWORD)")
	rconCmd.Flags().BoolVar(&logRconPassword, "log-rcon-password", logRconPassword, "include the rcon password in debug logs")
	rconCmd.Flags().BoolVar(&strictText, "strict-text", strictText, "fail on responses that are not valid UTF-8")
	addClientFlags(rconCmd)
}
