package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogrusLogger é a implementação de Logger sobre o logrus
type LogrusLogger struct {
	entry *logrus.Entry
}

// Options configura o logger
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json ou text
	Output io.Writer
}

// NewLogger cria uma nova instância de Logger com nível info e saída JSON
func NewLogger() Logger {
	return New(Options{Level: "info", Format: "json"})
}

// New cria um Logger a partir das opções informadas
func New(opts Options) Logger {
	l := logrus.New()

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	if strings.EqualFold(opts.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// NewNop cria um Logger que descarta as mensagens, útil em testes
func NewNop() Logger {
	return New(Options{Level: "panic", Output: io.Discard})
}

// Info registra uma mensagem de informação
func (l *LogrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Info(msg)
}

// Error registra uma mensagem de erro
func (l *LogrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Error(msg)
}

// Debug registra uma mensagem de debug
func (l *LogrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

// Warn registra uma mensagem de aviso
func (l *LogrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Warn(msg)
}

// fields converte pares chave/valor em campos do logrus; uma chave sem valor
// é registrada em "extra"
func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = "extra"
		}
		if i+1 >= len(keysAndValues) {
			f["extra"] = keysAndValues[i]
			break
		}
		val := keysAndValues[i+1]
		if err, isErr := val.(error); isErr {
			val = err.Error()
		}
		f[key] = val
	}
	return f
}
