package registry

import (
	"fmt"
	"strings"
	"time"

	"finbrief/pkg/agentcall"

	"github.com/spf13/viper"
)

// ConfigurationError reports an unknown service or endpoint name. It is a
// wiring mistake, so mains treat it as fatal at startup; it never occurs
// at request time because every target is resolved once during wiring.
type ConfigurationError struct {
	Service  string
	Endpoint string
}

func (e *ConfigurationError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("service registry: unknown service %q", e.Service)
	}
	return fmt.Sprintf("service registry: unknown endpoint %q for service %q", e.Endpoint, e.Service)
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type serviceConfig struct {
	BaseURL          string                   `mapstructure:"base_url"`
	Timeout          time.Duration            `mapstructure:"timeout"`
	Endpoints        map[string]string        `mapstructure:"endpoints"`
	EndpointTimeouts map[string]time.Duration `mapstructure:"endpoint_timeouts"`
}

// Registry is the static service table: logical service name to base
// address, endpoint paths and per-call timeouts. Built once at startup
// and read-only afterwards, so it is safe to share across requests.
type Registry struct {
	Server   ServerConfig
	services map[string]serviceConfig
}

// Load reads the registry from the given config file merged over built-in
// defaults, with FINBRIEF_* environment overrides. An empty path falls
// back to ./config.yaml when present.
func Load(path string) (*Registry, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FINBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg struct {
		Server   ServerConfig             `mapstructure:"server"`
		Services map[string]serviceConfig `mapstructure:"services"`
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &Registry{Server: cfg.Server, services: cfg.Services}, nil
}

// Resolve maps a (service, endpoint) pair to a concrete call target. The
// endpoint inherits the service timeout unless an endpoint_timeouts entry
// overrides it.
func (r *Registry) Resolve(service, endpoint string) (agentcall.Target, error) {
	svc, ok := r.services[service]
	if !ok {
		return agentcall.Target{}, &ConfigurationError{Service: service}
	}
	path, ok := svc.Endpoints[endpoint]
	if !ok {
		return agentcall.Target{}, &ConfigurationError{Service: service, Endpoint: endpoint}
	}
	timeout := svc.Timeout
	if t, ok := svc.EndpointTimeouts[endpoint]; ok {
		timeout = t
	}
	return agentcall.Target{
		Service:  service,
		Endpoint: endpoint,
		URL:      strings.TrimSuffix(svc.BaseURL, "/") + path,
		Timeout:  timeout,
	}, nil
}

// Defaults mirror the reference deployment: one agent per port on
// localhost, short timeouts for data calls, a long one for summarization.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("services.api.base_url", "http://localhost:8001")
	v.SetDefault("services.api.timeout", 5*time.Second)
	v.SetDefault("services.api.endpoints.exposure", "/exposure")
	v.SetDefault("services.api.endpoints.earnings", "/earnings_surprises")

	v.SetDefault("services.scraper.base_url", "http://localhost:8003")
	v.SetDefault("services.scraper.timeout", 10*time.Second)
	v.SetDefault("services.scraper.endpoints.news", "/scrape_news")

	v.SetDefault("services.retriever.base_url", "http://localhost:8002")
	v.SetDefault("services.retriever.timeout", 5*time.Second)
	v.SetDefault("services.retriever.endpoints.query", "/query")

	v.SetDefault("services.llm.base_url", "http://localhost:8400")
	v.SetDefault("services.llm.timeout", 30*time.Second)
	v.SetDefault("services.llm.endpoints.brief", "/generate-brief")

	v.SetDefault("services.voice.base_url", "http://localhost:8500")
	v.SetDefault("services.voice.timeout", 15*time.Second)
	v.SetDefault("services.voice.endpoints.stt", "/stt")
	v.SetDefault("services.voice.endpoints.tts", "/tts")
	v.SetDefault("services.voice.endpoint_timeouts.tts", 20*time.Second)
}
