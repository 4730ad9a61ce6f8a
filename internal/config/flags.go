package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-poll-interval cycle spacing in daemon mode (e.g., "15m")
//	-lookback-days discovery window size in days
//	-workers maximum concurrent transfers
//	-chunk-size copy chunk size in bytes
//	-max-retries per-file attempt ceiling
//	-backoff-base first retry delay (e.g., "1s")
//	-backoff-max retry delay cap (e.g., "30s")
//	-copy-timeout per-attempt copy deadline (e.g., "10m")
//	-max-file-size skip discovered objects larger than this many bytes
//	-retention-days prune transfer records older than this many days
//	-source-url source object store URL (file:// or http(s)://)
//	-source-prefix source key prefix for cost-report exports
//	-dest-url destination object store URL
//	-state-backend dedup state backend: file, sqlite or postgres
//	-state-path state file path (file backend)
//	-state-dsn state database DSN (sql backends)
//	-status-address status HTTP server address host:port
//	-c/-config json file path with configs
//	-once run exactly one cycle and exit
//	-force re-transfer every discovered file, ignoring state
func ParseFlags() *StructuredConfig {
	var pollInterval time.Duration
	var lookbackDays int
	var workers int
	var chunkSize int
	var maxRetries int
	var backoffBase time.Duration
	var backoffMax time.Duration
	var copyTimeout time.Duration
	var maxFileSize int64
	var retentionDays int
	var sourceURL string
	var sourcePrefix string
	var destURL string
	var stateBackend string
	var statePath string
	var stateDSN string
	var statusAddress string
	var jsonConfigPath string
	var runOnce bool
	var force bool

	flag.DurationVar(&pollInterval, "poll-interval", 0, "Cycle spacing in daemon mode (e.g., 15m)")
	flag.IntVar(&lookbackDays, "lookback-days", 0, "Discovery window size in days")
	flag.IntVar(&workers, "workers", 0, "Maximum concurrent transfers")
	flag.IntVar(&chunkSize, "chunk-size", 0, "Copy chunk size in bytes")
	flag.IntVar(&maxRetries, "max-retries", 0, "Per-file attempt ceiling")
	flag.DurationVar(&backoffBase, "backoff-base", 0, "First retry delay (e.g., 1s)")
	flag.DurationVar(&backoffMax, "backoff-max", 0, "Retry delay cap (e.g., 30s)")
	flag.DurationVar(&copyTimeout, "copy-timeout", 0, "Per-attempt copy deadline (e.g., 10m)")
	flag.Int64Var(&maxFileSize, "max-file-size", 0, "Skip objects larger than this many bytes")
	flag.IntVar(&retentionDays, "retention-days", 0, "Prune records older than this many days")
	flag.StringVar(&sourceURL, "source-url", "", "Source object store URL")
	flag.StringVar(&sourcePrefix, "source-prefix", "", "Source key prefix")
	flag.StringVar(&destURL, "dest-url", "", "Destination object store URL")
	flag.StringVar(&stateBackend, "state-backend", "", "State backend: file, sqlite or postgres")
	flag.StringVar(&statePath, "state-path", "", "State file path (file backend)")
	flag.StringVar(&stateDSN, "state-dsn", "", "State database DSN (sql backends)")
	flag.StringVar(&statusAddress, "status-address", "", "Status HTTP server address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.BoolVar(&runOnce, "once", false, "Run exactly one cycle and exit")
	flag.BoolVar(&force, "force", false, "Re-transfer every discovered file, ignoring state")

	flag.Parse()

	return &StructuredConfig{
		Agent: Agent{
			PollInterval:           pollInterval,
			LookbackDays:           lookbackDays,
			MaxConcurrentTransfers: workers,
			ChunkSizeBytes:         chunkSize,
			MaxRetries:             maxRetries,
			BackoffBase:            backoffBase,
			BackoffMax:             backoffMax,
			CopyTimeout:            copyTimeout,
			MaxFileSizeBytes:       maxFileSize,
			RetentionDays:          retentionDays,
			RunOnce:                runOnce,
			Force:                  force,
		},
		Source: Source{
			URL:    sourceURL,
			Prefix: sourcePrefix,
		},
		Destination: Destination{
			URL: destURL,
		},
		State: State{
			Backend: stateBackend,
			Path:    statePath,
			DSN:     stateDSN,
		},
		Server: Server{
			StatusAddress: statusAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}
