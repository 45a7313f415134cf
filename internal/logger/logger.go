package logger

import (
	"context"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultService names the process in log lines and sentry events when Config.Service is empty
const DefaultService = "marketplace"

var (
	log          = zap.NewNop()
	sentryClient *sentry.Client
)

// Config holds logger configuration
type Config struct {
	Debug bool
	// Service is stamped on every line as the "service" field and sent to sentry as a tag
	Service         string
	SentryDSN       string
	SentryClient    *sentry.Client
	BreadcrumbLevel zapcore.Level
	// Tags are extra sentry tags; a "service" entry here wins over Service
	Tags map[string]string
}

func (c Config) service() string {
	if c.Service == "" {
		return DefaultService
	}
	return c.Service
}

// Initialize builds the global logger. Errors go to sentry when a DSN or client is configured.
func Initialize(cfg Config) error {
	zapConfig := zap.NewProductionConfig()
	if cfg.Debug {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	service := cfg.service()
	base, err := zapConfig.Build(zap.Fields(zap.String("service", service)))
	if err != nil {
		return err
	}

	if cfg.SentryDSN == "" && cfg.SentryClient == nil {
		sentryClient = nil
		log = base
		return nil
	}

	client := cfg.SentryClient
	if client == nil {
		client, err = sentry.NewClient(sentry.ClientOptions{
			Dsn:   cfg.SentryDSN,
			Debug: cfg.Debug,
		})
		if err != nil {
			return err
		}
	}

	core, err := zapsentry.NewCore(sentryConfig(cfg, service), zapsentry.NewSentryClientFromClient(client))
	if err != nil {
		return err
	}

	sentryClient = client
	log = zapsentry.AttachCoreToLogger(core, base)
	return nil
}

func sentryConfig(cfg Config, service string) zapsentry.Configuration {
	tags := map[string]string{"service": service}
	for k, v := range cfg.Tags {
		tags[k] = v
	}

	breadcrumbs := cfg.BreadcrumbLevel
	if breadcrumbs == zapcore.InvalidLevel {
		breadcrumbs = zapcore.InfoLevel
	}

	return zapsentry.Configuration{
		Level:             zapcore.ErrorLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   breadcrumbs,
		Tags:              tags,
	}
}

// Flush flushes any buffered sentry events
func Flush(timeout time.Duration) {
	if sentryClient != nil {
		sentryClient.Flush(timeout)
	}
}

// FromContext returns the global logger scoped to ctx: the request id, if any, plus the
// sentry hub carried by the context.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}
	return log.With(append(requestFields(ctx), zapsentry.Context(ctx))...)
}

// Default returns the global logger (without context scope)
func Default() *zap.Logger {
	return log
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Debug(msg, fields...)
}

// Error logs err as the message. A nil err is still logged so the call site shows up.
func Error(err error, fields ...zap.Field) {
	log.Error(errorMessage(err), fields...)
}

func ErrorCtx(ctx context.Context, err error, fields ...zap.Field) {
	FromContext(ctx).Error(errorMessage(err), fields...)
}

// Fatal logs and exits the process
func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, fields...)
}

func FatalCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Fatal(msg, fields...)
}

func errorMessage(err error) string {
	if err == nil {
		return "error occurred"
	}
	return err.Error()
}
