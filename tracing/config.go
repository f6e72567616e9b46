package tracing

import (
	"fmt"
	"net"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config declares the file and environment configuration understood by
// NewSpanLoggerFromConfig.
type Config struct {
	ServiceName string `yaml:"serviceName" env:"TRACING_SERVICE_NAME" env-description:"Local service name attached to every span"`
	LocalIP     string `yaml:"localIp" env:"TRACING_LOCAL_IP" env-description:"Local address attached to every span; resolved from the host name when unset"`
	Workers     int    `yaml:"workers" env:"TRACING_WORKERS" env-default:"1" env-description:"Worker goroutines serializing spans"`
	QueueSize   int    `yaml:"queueSize" env:"TRACING_QUEUE_SIZE" env-default:"64" env-description:"Pending span queue capacity"`
	LogLevel    string `yaml:"logLevel" env:"TRACING_LOG_LEVEL" env-default:"trace" env-description:"Maximum detail level emitted"`
}

// LoadConfig reads configuration from path, with environment variables
// taking precedence. An empty path reads from the environment alone.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(path, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("tracing: read config: %w", err)
	}
	if cfg.ServiceName == "" {
		return Config{}, fmt.Errorf("tracing: serviceName is required")
	}
	return cfg, nil
}

// NewSpanLoggerFromConfig assembles a SpanLogger from cfg, writing span
// output and operational errors to logger.
func NewSpanLoggerFromConfig(cfg Config, logger Logger) (*SpanLogger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	options := []SpanLoggerOption{
		SpanLoggerWorkers(cfg.Workers),
		SpanLoggerQueueSize(cfg.QueueSize),
		SpanLoggerErrorLogger(logger),
	}
	if cfg.LocalIP != "" {
		ip := net.ParseIP(cfg.LocalIP)
		if ip == nil {
			return nil, fmt.Errorf("tracing: invalid localIp %q", cfg.LocalIP)
		}
		options = append(options, SpanLoggerLocalIP(ip))
	}

	return NewSpanLogger(cfg.ServiceName, NewLevelLogger(logger, level), options...), nil
}
