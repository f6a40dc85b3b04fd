// Package watch implements the "gpuwatch watch" command: resolving the
// configuration surface (flags, environment, keyring, config file) and
// running the polling watcher.
package watch

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gpuwatch/internal/auth"
	"gpuwatch/internal/config"
	"gpuwatch/internal/history"
	"gpuwatch/internal/lambdalabs"
	"gpuwatch/internal/logging"
	"gpuwatch/internal/notify"
	"gpuwatch/internal/retry"
	"gpuwatch/internal/watch"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	apiKeyEnv  = "LAMBDA_API_KEY"
	webhookEnv = "SLACK_WEBHOOK_URL"

	defaultIntervalSeconds = 60
)

// NewCommand returns the "watch" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll for instance availability and alert on changes",
		Long: `Poll the Lambda Labs instance-types API on a fixed interval and alert
whenever a watched instance type becomes available or stops being
available in a region.

The API key is resolved from --api-key, the LAMBDA_API_KEY environment
variable, or the keychain (see 'gpuwatch auth login'). The webhook URL
is resolved from --webhook, SLACK_WEBHOOK_URL, or the config file. A
.env file in the working directory is loaded first.

Examples:
  gpuwatch watch -t h100
  gpuwatch watch -t h100 -t a100 -r us --min-gpus 8
  gpuwatch watch -t gh200 --once --no-notify`,
		RunE:         runWatch,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("api-key", "k", "", "Lambda Labs API key (or set LAMBDA_API_KEY)")
	cmd.Flags().StringP("webhook", "w", "", "Webhook URL for alerts (or set SLACK_WEBHOOK_URL)")
	cmd.Flags().StringArrayP("type", "t", nil, "Instance type pattern to watch; repeatable, matches name or description, case-insensitive")
	cmd.Flags().StringP("region", "r", "", "Region name prefix filter (e.g. 'us' matches 'us-west-1')")
	cmd.Flags().Int("min-gpus", 0, "Minimum GPUs per instance type")
	cmd.Flags().Int("max-gpus", 0, "Maximum GPUs per instance type")
	cmd.Flags().IntP("interval", "i", defaultIntervalSeconds, "Polling interval in seconds")
	cmd.Flags().Bool("once", false, "Run a single poll cycle and exit")
	cmd.Flags().Bool("no-notify", false, "Disable webhook notifications; alerts are only logged")
	cmd.Flags().Bool("no-history", false, "Disable recording transitions to the local history database")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn, or error")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Best-effort .env loading; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	log, err := logging.New(logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := resolveOptions(cmd, cfg)
	if err != nil {
		return err
	}

	spec, err := watch.NewSpec(opts.patterns, opts.regionPrefix, opts.minGPUs, opts.maxGPUs)
	if err != nil {
		return err
	}
	log.Info("watching for instance availability",
		zap.Strings("patterns", spec.Patterns()),
		zap.String("region_prefix", opts.regionPrefix),
		zap.Duration("interval", opts.interval),
		zap.Bool("notifications", opts.notify),
	)

	var notifier watch.Notifier
	if opts.notify {
		notifier = notify.NewWebhook(opts.webhookURL)
	}

	var recorder watch.Recorder
	if opts.recordHistory {
		repo, err := history.Open()
		if err != nil {
			// History is a convenience; a broken local db must not stop
			// the watchdog.
			log.Warn("history disabled: failed to open database", zap.Error(err))
		} else {
			defer repo.Close()
			recorder = repoRecorder{repo: repo}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := watch.New(lambdalabs.NewClient(opts.apiKey), watch.Options{
		Spec:     spec,
		Interval: opts.interval,
		Once:     opts.once,
		Notifier: notifier,
		Recorder: recorder,
		Retry:    retry.DefaultConfig(),
		Logger:   log,
	})

	return watcher.Run(ctx)
}

// options is the fully resolved configuration surface for one run.
type options struct {
	apiKey        string
	webhookURL    string
	patterns      []string
	regionPrefix  string
	minGPUs       *int
	maxGPUs       *int
	interval      time.Duration
	once          bool
	notify        bool
	recordHistory bool
}

// resolveOptions merges flags, environment variables, the keychain, and
// the persistent config file, in that order of precedence.
func resolveOptions(cmd *cobra.Command, cfg *config.Config) (*options, error) {
	flags := cmd.Flags()
	opts := &options{}

	opts.apiKey, _ = flags.GetString("api-key")
	if opts.apiKey == "" {
		opts.apiKey = os.Getenv(apiKeyEnv)
	}
	if opts.apiKey == "" {
		// Fall back to the keychain; any lookup failure just means the
		// key was not stored there.
		if key, err := auth.DefaultStore().Get(auth.APIKeyName); err == nil {
			opts.apiKey = key
		}
	}
	if opts.apiKey == "" {
		return nil, fmt.Errorf("missing API key: use --api-key, set %s, or run 'gpuwatch auth login'", apiKeyEnv)
	}

	opts.webhookURL, _ = flags.GetString("webhook")
	if opts.webhookURL == "" {
		opts.webhookURL = os.Getenv(webhookEnv)
	}
	if opts.webhookURL == "" {
		opts.webhookURL = cfg.WebhookURL
	}
	if opts.webhookURL == "" {
		return nil, fmt.Errorf("missing webhook URL: use --webhook, set %s, or run 'gpuwatch config set webhook-url <url>'", webhookEnv)
	}

	opts.patterns, _ = flags.GetStringArray("type")
	if len(opts.patterns) == 0 {
		return nil, errors.New("missing instance type patterns: use --type (repeatable)")
	}

	opts.regionPrefix, _ = flags.GetString("region")
	if opts.regionPrefix == "" {
		opts.regionPrefix = cfg.RegionPrefix
	}

	if flags.Changed("min-gpus") {
		v, _ := flags.GetInt("min-gpus")
		opts.minGPUs = &v
	}
	if flags.Changed("max-gpus") {
		v, _ := flags.GetInt("max-gpus")
		opts.maxGPUs = &v
	}

	intervalSeconds, _ := flags.GetInt("interval")
	if !flags.Changed("interval") && cfg.IntervalSeconds > 0 {
		intervalSeconds = cfg.IntervalSeconds
	}
	if intervalSeconds <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %d", intervalSeconds)
	}
	opts.interval = time.Duration(intervalSeconds) * time.Second

	opts.once, _ = flags.GetBool("once")

	noNotify, _ := flags.GetBool("no-notify")
	opts.notify = !noNotify

	noHistory, _ := flags.GetBool("no-history")
	opts.recordHistory = !noHistory && !cfg.DisableHistory

	return opts, nil
}

// repoRecorder adapts the history repository to the watcher's Recorder
// interface.
type repoRecorder struct {
	repo history.Repository
}

func (r repoRecorder) RecordAppeared(key watch.Key, info watch.Info) error {
	return r.repo.Save(&history.Transition{
		Direction:    history.DirectionAppeared,
		InstanceType: key.InstanceType,
		Region:       key.Region,
		GPUs:         info.GPUs,
		Detail:       info.Description,
	})
}

func (r repoRecorder) RecordDisappeared(key watch.Key) error {
	return r.repo.Save(&history.Transition{
		Direction:    history.DirectionDisappeared,
		InstanceType: key.InstanceType,
		Region:       key.Region,
	})
}
