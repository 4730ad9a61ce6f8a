package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Agent struct {
		PollInterval           Duration `json:"poll_interval"`
		LookbackDays           int      `json:"lookback_days"`
		MaxConcurrentTransfers int      `json:"max_concurrent_transfers"`
		ChunkSizeBytes         int      `json:"chunk_size_bytes"`
		MaxRetries             int      `json:"max_retries"`
		BackoffBase            Duration `json:"backoff_base"`
		BackoffMax             Duration `json:"backoff_max"`
		CopyTimeout            Duration `json:"copy_timeout"`
		MaxFileSizeBytes       int64    `json:"max_file_size_bytes"`
		RetentionDays          int      `json:"retention_days"`
	} `json:"agent,omitempty"`

	Source struct {
		URL            string   `json:"url"`
		Prefix         string   `json:"prefix"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"source,omitempty"`

	Destination struct {
		URL            string   `json:"url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"destination,omitempty"`

	State struct {
		Backend string `json:"backend"`
		Path    string `json:"path"`
		DSN     string `json:"dsn"`
	} `json:"state,omitempty"`

	Server struct {
		StatusAddress  string   `json:"status_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Agent: Agent{
			PollInterval:           time.Duration(jsonCfg.Agent.PollInterval),
			LookbackDays:           jsonCfg.Agent.LookbackDays,
			MaxConcurrentTransfers: jsonCfg.Agent.MaxConcurrentTransfers,
			ChunkSizeBytes:         jsonCfg.Agent.ChunkSizeBytes,
			MaxRetries:             jsonCfg.Agent.MaxRetries,
			BackoffBase:            time.Duration(jsonCfg.Agent.BackoffBase),
			BackoffMax:             time.Duration(jsonCfg.Agent.BackoffMax),
			CopyTimeout:            time.Duration(jsonCfg.Agent.CopyTimeout),
			MaxFileSizeBytes:       jsonCfg.Agent.MaxFileSizeBytes,
			RetentionDays:          jsonCfg.Agent.RetentionDays,
		},
		Source: Source{
			URL:            jsonCfg.Source.URL,
			Prefix:         jsonCfg.Source.Prefix,
			RequestTimeout: time.Duration(jsonCfg.Source.RequestTimeout),
		},
		Destination: Destination{
			URL:            jsonCfg.Destination.URL,
			RequestTimeout: time.Duration(jsonCfg.Destination.RequestTimeout),
		},
		State: State{
			Backend: jsonCfg.State.Backend,
			Path:    jsonCfg.State.Path,
			DSN:     jsonCfg.State.DSN,
		},
		Server: Server{
			StatusAddress:  jsonCfg.Server.StatusAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
