package main

import (
	"github.com/spf13/cobra"

	"agentcore-tools/internal/common/config"
	httpclient "agentcore-tools/internal/common/http"
	agentinvoke "agentcore-tools/internal/tools/agent-invoke"
)

func newInvokeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Send one prompt to an agent runtime with a JWT bearer token",
		Long: `invoke posts a single prompt to the runtime's HTTPS invocation
endpoint, authenticating with a Cognito JWT, and prints the decoded answer.
The request waits up to invoke.timeout milliseconds (default 300000) and is
never retried.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := startRun(cmd, opts, (*config.Config).ValidateForInvoke)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			invokeCfg := &agentinvoke.Config{
				Region:           r.cfg.Agent.Region,
				EndpointTemplate: r.cfg.Invoke.EndpointTemplate,
				Timeout:          config.GetDuration(r.cfg.Invoke.Timeout),
			}
			if err := invokeCfg.Validate(); err != nil {
				return r.finish(ctx, err)
			}

			svc := agentinvoke.NewService(agentinvoke.ServiceDependencies{
				Client: httpclient.NewClient(invokeCfg.Timeout),
				Logger: r.log,
				Out:    cmd.OutOrStdout(),
			}, invokeCfg)

			_, err = svc.Execute(ctx, &agentinvoke.Input{
				RuntimeARN: r.cfg.Agent.RuntimeARN,
				Token:      r.cfg.Invoke.Token,
				Prompt:     r.cfg.Invoke.Prompt,
				Topic:      r.cfg.Invoke.Topic,
				ActiveOnly: r.cfg.Invoke.ActiveOnly,
			})
			return r.finish(ctx, err)
		},
	}

	flags := cmd.Flags()
	flags.String("token", "", "Cognito JWT (id token) sent as bearer token")
	flags.StringP("prompt", "p", "", "prompt to send")
	flags.String("topic", "", "optional topic filter")
	flags.Bool("active-only", false, "only consider active documents")
	mustBindFlags(opts.v, flags, map[string]string{
		"token":       "invoke.token",
		"prompt":      "invoke.prompt",
		"topic":       "invoke.topic",
		"active-only": "invoke.active_only",
	})

	return cmd
}
