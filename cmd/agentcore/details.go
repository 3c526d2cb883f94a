package main

import (
	"github.com/spf13/cobra"

	"agentcore-tools/internal/common/aws"
	"agentcore-tools/internal/common/config"
	agentdetails "agentcore-tools/internal/tools/agent-details"
)

func newDetailsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Look up an agent runtime through the AgentCore control plane",
		Long: `details derives the runtime id from the configured ARN, calls
GetAgentRuntime with credentials from the default AWS chain and prints the
full response followed by a summary of its key fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := startRun(cmd, opts, (*config.Config).ValidateForDetails)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			detailsCfg := &agentdetails.Config{
				Region:       r.cfg.Agent.Region,
				OutputFormat: r.cfg.Details.Output,
			}
			if err := detailsCfg.Validate(); err != nil {
				return r.finish(ctx, err)
			}

			client, err := aws.NewControlPlaneClient(ctx, r.cfg.Agent.Region, r.cfg.AWS.ControlPlaneEndpoint)
			if err != nil {
				return r.finish(ctx, err)
			}

			svc := agentdetails.NewService(agentdetails.ServiceDependencies{
				Fetcher: client,
				Logger:  r.log,
				Out:     cmd.OutOrStdout(),
			}, detailsCfg)

			_, err = svc.Execute(ctx, &agentdetails.Input{RuntimeARN: r.cfg.Agent.RuntimeARN})
			return r.finish(ctx, err)
		},
	}

	cmd.Flags().StringP("output", "o", "", "format of the full response: json or yaml")
	mustBindFlags(opts.v, cmd.Flags(), map[string]string{
		"output": "details.output",
	})

	return cmd
}
