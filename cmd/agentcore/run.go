package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"agentcore-tools/internal/common/config"
	"agentcore-tools/internal/common/console"
	"agentcore-tools/internal/common/errors"
	"agentcore-tools/internal/common/logger"
	"agentcore-tools/internal/common/observability"
)

// run holds what every command needs once configuration is settled.
type run struct {
	command string
	cfg     *config.Config
	log     logger.Logger
	obs     *observability.Observability
	out     *console.Printer
	start   time.Time
}

// startRun loads and validates configuration, then builds the logger and
// metrics for one command. Configuration problems are printed with their
// guidance before anything touches the network.
func startRun(cmd *cobra.Command, opts *rootOptions, validate func(*config.Config) error) (*run, error) {
	out := console.New(cmd.OutOrStdout())

	cfg, err := config.Load(opts.v, config.Options{ConfigFile: opts.configFile})
	if err != nil {
		err = errors.NewConfigInvalidError(err.Error(), "")
		reportError(out, err)
		return nil, err
	}
	if err := validate(cfg); err != nil {
		reportError(out, err)
		return nil, err
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).With(map[string]interface{}{
		"runId":   uuid.NewString(),
		"command": cmd.Name(),
	})
	if cfg.App.EnvFile != "" {
		log.Debug("Loaded environment file", map[string]interface{}{
			"path": cfg.App.EnvFile,
		})
	}

	obs, err := observability.New(cfg.App.Name, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job)
	if err != nil {
		log.Warn("Metrics disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &run{
		command: cmd.Name(),
		cfg:     cfg,
		log:     log,
		obs:     obs,
		out:     out,
		start:   time.Now(),
	}, nil
}

// finish reports err, records the run and flushes metrics and logs. It
// returns err unchanged.
func (r *run) finish(ctx context.Context, err error) error {
	status := "success"
	if err != nil {
		status = string(errors.CodeOf(err))
		reportError(r.out, err)
		r.log.Error("Command failed", map[string]interface{}{
			"errorCode": status,
			"category":  errors.GetErrorCategory(errors.CodeOf(err)),
			"error":     err.Error(),
		})
	}

	if r.obs != nil {
		r.obs.RecordRun(ctx, r.command, status, time.Since(r.start))
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if pushErr := r.obs.Push(pushCtx); pushErr != nil {
			r.log.Warn("Metrics push failed", map[string]interface{}{
				"error": pushErr.Error(),
			})
		}
		cancel()
		r.obs.Shutdown()
	}

	_ = r.log.Sync()
	return err
}

// reportError prints configuration errors with their guidance and any
// other error as a failure line.
func reportError(out *console.Printer, err error) {
	stdErr := errors.Normalize(err)
	if stdErr.Code == errors.ErrCodeConfigInvalid {
		out.Failure("Error: %s", stdErr.Message)
		if stdErr.Details != "" {
			out.Blank()
			out.Line("%s", stdErr.Details)
		}
		return
	}
	out.Blank()
	out.Failure("Failed: %v", err)
}
