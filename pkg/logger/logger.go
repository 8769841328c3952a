// Package logger arma el logger estructurado de la aplicación: consola
// legible en desarrollo, JSON una línea por evento en producción.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controla la salida y el nivel mínimo.
type Config struct {
	Env   string // "development" habilita el ConsoleWriter
	Level string // trace, debug, info, warn, error; vacío cae en info
}

// Logger envuelve zerolog para inyectarlo por constructor.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno y lo instala también como logger
// global de zerolog, para las librerías que loguean por su cuenta.
func New(cfg Config) *Logger {
	out := io.Writer(os.Stdout)
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone el logger interno cuando se necesita la API directa.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
