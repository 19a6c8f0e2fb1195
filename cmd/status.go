package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/haveachin/q3tool/pkg/q3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat = "text"
	strictText   = false
	timeout      = 3 * time.Second
	bufferSize   = "2KB"

	statusCmd = &cobra.Command{
		Use:   "status <host:port>",
		Short: "Queries the variables and players of a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := clientConfig()
			if err != nil {
				return err
			}

			c := q3.NewClient(args[0], cfg)
			info, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}

			return writeServerInfo(cmd.OutOrStdout(), info, outputFormat)
		},
	}
)

func init() {
	statusCmd.Flags().StringVarP(&outputFormat, "output", "o", outputFormat, "output format (text, json, yaml)")
	statusCmd.Flags().BoolVar(&strictText, "strict-text", strictText, "fail on responses that are not valid UTF-8")
	addClientFlags(statusCmd)
}

func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", timeout, "time to wait for the server to respond")
	cmd.Flags().StringVar(&bufferSize, "buffer-size", bufferSize, "size of the receive buffer")
}

func clientConfig() (q3.ClientConfig, error) {
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(bufferSize)); err != nil {
		return q3.ClientConfig{}, fmt.Errorf("invalid buffer size %q: %w", bufferSize, err)
	}

	textMode := q3.TextLossy
	if strictText {
		textMode = q3.TextStrict
	}

	return q3.ClientConfig{
		TextMode:   textMode,
		BufferSize: int(size.Bytes()),
		Timeout:    timeout,
		Logger:     logger,
	}, nil
}

func writeServerInfo(w io.Writer, info q3.ServerInfo, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return writeServerInfoText(w, info)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeServerInfoText(w io.Writer, info q3.ServerInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range info.Vars.Keys() {
		fmt.Fprintf(tw, "%s\t%s\n", k, info.Vars[k])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d players\n", len(info.Players))
	if len(info.Players) == 0 {
		return nil
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "SCORE\tPING\t")
	for _, p := range info.Players {
		fmt.Fprintf(tw, "%d\t%d\t %s\n", p.Score, p.Ping, p.Name)
	}
	return tw.Flush()
}
