package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/lmittmann/tint"
)

// Options selects the handler flavour.
type Options struct {
	Env     string
	Level   slog.Level
	App     string
	Version string
}

// New builds the application logger. Development gets a colored console
// handler; every other environment logs ECS-shaped JSON so request logs from
// httplog and application logs share one schema.
func New(w io.Writer, opts Options) *slog.Logger {
	var handler slog.Handler

	if opts.Env == "development" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      opts.Level,
			TimeFormat: time.DateTime,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == "error" && a.Value.Kind() == slog.KindAny {
					if err, ok := a.Value.Any().(error); ok {
						return tint.Err(err)
					}
				}
				return a
			},
		})
	} else {
		logFormat := httplog.SchemaECS.Concise(false)
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       opts.Level,
			ReplaceAttr: logFormat.ReplaceAttr,
		})
	}

	return slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)
}
