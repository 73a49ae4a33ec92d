package main

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssfn "github.com/aws/aws-sdk-go-v2/service/sfn"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"smartfill/internal/config"
	"smartfill/internal/history"
	"smartfill/internal/integrations/objectstore"
	"smartfill/internal/integrations/paramstore"
	"smartfill/internal/integrations/pipeline"
	"smartfill/internal/launcher"
	"smartfill/internal/poller"
	"smartfill/internal/session"
	"smartfill/internal/shell"
	"smartfill/internal/stager"
)

// app holds everything the subcommands need, built once per invocation.
type app struct {
	cfg  config.Config
	deps shell.Deps
}

func newApp(ctx context.Context) (*app, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if cfg.ParamPrefix != "" {
		ps, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			return nil, err
		}
		if err := cfg.ResolveFromParamStore(ctx, ps); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := objectstore.New(awss3.NewFromConfig(awsCfg), cfg.Bucket)
	if err != nil {
		return nil, err
	}
	pipe, err := pipeline.New(awssfn.NewFromConfig(awsCfg), cfg.StateMachineARN)
	if err != nil {
		return nil, err
	}
	st, err := stager.New(store)
	if err != nil {
		return nil, err
	}
	l, err := launcher.New(pipe)
	if err != nil {
		return nil, err
	}
	p, err := poller.New(pipe, cfg.PollInterval)
	if err != nil {
		return nil, err
	}

	deps := shell.Deps{
		Stager:       st,
		Launcher:     l,
		Poller:       p,
		History:      newHistory(),
		NewSessionID: session.NewID,
	}
	return &app{cfg: cfg, deps: deps}, nil
}

// newHistory returns the session history store, or nil when the state
// location cannot be resolved; history is a convenience, not a requirement.
func newHistory() history.ReadWriter {
	path, err := history.DefaultPath()
	if err != nil {
		slog.Warn("session history disabled", "err", err)
		return nil
	}
	hist, err := history.New(path)
	if err != nil {
		slog.Warn("session history disabled", "err", err)
		return nil
	}
	return hist
}
