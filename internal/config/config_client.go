package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

// ClientApp holds the token parameters the CLI uses to mint its own bearer
// tokens. They must match the server's.
type ClientApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the address of the card-privacy server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
}

// GetClientConfig builds the client configuration from the environment, the
// leading flags of args and the optional JSON file, in that order. The
// arguments left after the flags are returned as the command line of the
// client.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	var rest []string

	cfg, err := newConfigBuilder().
		withEnv().
		withClientFlags(args, &rest).
		withJSON().
		build()
	if err != nil {
		return nil, nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}

	return clientCfg, rest, clientCfg.validate()
}

// ParseClientFlags parses the flags understood by the CLI and returns the
// remaining arguments.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-token-issuer token issuer name
//	-request-timeout request timeout (e.g., "10s")
func ParseClientFlags(args []string) (*StructuredConfig, []string, error) {
	var serverAddress RemoteAddress
	cfg := &StructuredConfig{}

	fs := flag.NewFlagSet("privacyctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Server address host:port")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 10s)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, errors.Join(ErrInvalidFlags, err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	return cfg, fs.Args(), nil
}

func (b *configBuilder) withClientFlags(args []string, rest *[]string) *configBuilder {
	flags, remaining, err := ParseClientFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	*rest = remaining
	b.configs = append(b.configs, flags)
	return b
}
