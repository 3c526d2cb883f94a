package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"agentcore-tools/internal/common/config"
	"agentcore-tools/internal/common/errors"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

type rootOptions struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "agentcore",
		Short: "Inspect and invoke deployed Bedrock AgentCore runtimes",
		Long: `agentcore bundles two diagnostic tools for an agent deployed on
AWS Bedrock AgentCore:

  details   look up the runtime through the control plane and summarize it
  invoke    send one prompt over HTTPS with a JWT bearer token

Settings come from flags, AGENTCORE_* environment variables, a .env file
or agentcore.yaml, in that order of precedence.`,
		Args: cobra.NoArgs,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. missing configuration, failed requests)
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./agentcore.yaml or ./configs/agentcore.yaml)")
	flags.String("arn", "", "agent runtime ARN")
	flags.String("region", "", "AWS region (default eu-central-1)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	mustBindFlags(opts.v, flags, map[string]string{
		"arn":       "agent.runtime_arn",
		"region":    "agent.region",
		"log-level": "logging.level",
	})

	cmd.AddCommand(newDetailsCmd(opts))
	cmd.AddCommand(newInvokeCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the root command under a context cancelled by SIGINT or
// SIGTERM and exits non-zero on failure.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "agentcore version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	// The command already printed the error
	if code := errors.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}

// mustBindFlags maps flag names onto viper keys. Binding only fails for
// a nil flag, which is a programming error.
func mustBindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}
