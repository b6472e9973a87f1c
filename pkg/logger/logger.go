// Package logger envuelve zerolog con la configuración del servicio: consola
// legible en desarrollo, JSON en producción y opcionalmente un archivo de log
// en disco (el servicio suele correr en la máquina del usuario, sin colector
// centralizado).
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string // development -> consola legible; otro valor -> JSON
	Level   string // debug, info, warn, error
	Archivo string // ruta de archivo de log, vacío = solo stdout
}

// Logger logger estructurado del servicio.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno. Si Archivo está definido se
// escribe además en ese archivo (append); un fallo al abrirlo no es fatal,
// se sigue con stdout.
func New(cfg Config) *Logger {
	var salida io.Writer = os.Stdout
	if cfg.Env == "development" {
		salida = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	if cfg.Archivo != "" {
		f, err := os.OpenFile(cfg.Archivo, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			salida = io.MultiWriter(salida, f)
		}
	}

	zl := zerolog.New(salida).Level(nivel(cfg.Level)).With().Timestamp().Logger()

	// Redirigir el logger global de zerolog para librerías que lo usen.
	log.Logger = zl

	return &Logger{zl: zl}
}

func nivel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Componente devuelve un sublogger etiquetado con el nombre del componente.
func (l *Logger) Componente(nombre string) *Logger {
	return &Logger{zl: l.zl.With().Str("componente", nombre).Logger()}
}
