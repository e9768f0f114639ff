package logger_adapter

import (
	"fmt"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentClientConfig holds the connection settings for Fluent Bit.
type FluentClientConfig struct {
	Host      string
	Port      int
	TagPrefix string // common prefix for all tags of this service
}

// NewFluentClient creates a client for Fluent Bit. A successfully created
// client does not guarantee a live connection; send errors surface on the
// first post.
func NewFluentClient(cfg FluentClientConfig) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return client, nil
}
