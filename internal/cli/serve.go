package cli

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"bnfplay/internal/envconfig"
	"bnfplay/internal/server"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the playground HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, _ := cmd.Flags().GetString("host")
			if !cmd.Flags().Changed("host") {
				var err error
				if host, err = envconfig.Host(); err != nil {
					return err
				}
			}

			a.log.Info("server config", "env", envconfig.Values())
			ln, err := net.Listen("tcp", host)
			if err != nil {
				return err
			}
			return server.Serve(cmd.Context(), ln, a.log)
		},
	}
	cmd.Flags().String("host", "127.0.0.1:7788", "Listen address (overrides BNFPLAY_HOST)")
	appendEnvDocs(cmd, envconfig.AsMap())
	return cmd
}

// appendEnvDocs lists the environment variables a command honors after its
// usage text.
func appendEnvDocs(cmd *cobra.Command, envs map[string]envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	names := make([]string, 0, len(envs))
	for name := range envs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("\nEnvironment Variables:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "      %-20s   %s\n", envs[name].Name, envs[name].Description)
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + b.String())
}
