package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/generation"
	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/polling"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/client"
)

type watchOptions struct {
	apiURL      string
	token       string
	userID      uint64
	interval    time.Duration
	maxAttempts int
}

func newWatchCommand(a *app) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <generationId>",
		Short: "Poll a processing generation until it completes, fails or times out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generationID, err := generation.ParseGenerationID(args[0])
			if err != nil {
				return err
			}
			return runWatch(cmd, a, opts, generationID)
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "status API base URL (default polling.api_base_url)")
	cmd.Flags().StringVar(&opts.token, "token", "", "bearer token used to mark timed out generations")
	cmd.Flags().Uint64Var(&opts.userID, "user-id", 0, "sign a token for this user with auth.jwt_secret instead of --token")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "poll interval (default polling.interval)")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 0, "attempts before giving up (default polling.max_attempts)")
	cmd.MarkFlagsMutuallyExclusive("token", "user-id")
	return cmd
}

func runWatch(cmd *cobra.Command, a *app, opts *watchOptions, generationID uint64) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	token := opts.token
	if opts.userID != 0 {
		signed, err := auth.NewTokenManager(a.cfg.Auth, a.timeProvider).Issue(opts.userID)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		token = signed
	}

	apiURL := opts.apiURL
	if apiURL == "" {
		apiURL = a.cfg.Polling.APIBaseURL
	}
	statusClient := client.NewStatusClient(client.Config{
		BaseURL: apiURL,
		Token:   token,
		Timeout: a.cfg.Polling.Timeout,
	}, nil, a.logger)

	pollCfg := polling.Config{
		Interval:    coreport.Duration(a.cfg.Polling.Interval),
		MaxAttempts: a.cfg.Polling.MaxAttempts,
	}
	if opts.interval > 0 {
		pollCfg.Interval = coreport.Duration(opts.interval)
	}
	if opts.maxAttempts > 0 {
		pollCfg.MaxAttempts = opts.maxAttempts
	}

	out := cmd.OutOrStdout()
	poller := polling.NewPoller(statusClient, a.timeProvider, a.logger, pollCfg, func(r polling.Result) {
		fmt.Fprintf(out, "generation %d: %s after %d attempts\n", generationID, r.State, r.Attempts)
	})

	known, err := statusClient.Status(ctx, generationID)
	if err != nil {
		return err
	}
	if known.Status != entity.StatusProcessing {
		printSnapshot(cmd, known)
		return nil
	}

	result, err := poller.Run(ctx, *known)
	if result.Snapshot != nil {
		printSnapshot(cmd, result.Snapshot)
	}
	return err
}

func printSnapshot(cmd *cobra.Command, s *entity.GenerationSnapshot) {
	image := "-"
	if s.ImageURL != nil {
		image = *s.ImageURL
	}
	fmt.Fprintf(cmd.OutOrStdout(), "id=%d status=%s image=%s\n", s.ID, s.Status, image)
}
