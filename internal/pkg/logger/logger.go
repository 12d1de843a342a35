package logger

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// Handlers, Services e Repositórios dependem apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)

	// With retorna um logger filho que sempre inclui os campos informados.
	With(fields map[string]interface{}) Logger
	// WithContext inclui os campos de requisição guardados no contexto (correlation id, operation id).
	WithContext(ctx context.Context) Logger
}

// ZapLogger é a implementação concreta sobre go.uber.org/zap.
type ZapLogger struct {
	z *zap.Logger
}

// NewLogger cria o logger JSON de produção com o nível informado ("debug", "info", "warn", "error").
// Esta função é chamada no main.go.
func NewLogger(level string) (Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return &ZapLogger{z: z}, nil
}

// New embrulha um *zap.Logger existente (usado nos testes com zaptest/observer).
func New(z *zap.Logger) Logger {
	return &ZapLogger{z: z}
}

// Nop retorna um logger que descarta tudo.
func Nop() Logger {
	return &ZapLogger{z: zap.NewNop()}
}

// Zap expõe o *zap.Logger subjacente para bibliotecas que o exigem.
func (l *ZapLogger) Zap() *zap.Logger { return l.z }

// Sync descarrega buffers pendentes. Chamado no shutdown.
func (l *ZapLogger) Sync() error { return l.z.Sync() }

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, toZap(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, toZap(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, toZap(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.z.Error(msg, zap.Error(err))
}

func (l *ZapLogger) Fatal(msg string, err error) {
	l.z.Fatal(msg, zap.Error(err))
}

func (l *ZapLogger) With(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZapLogger{z: l.z.With(toZap(fields)...)}
}

func (l *ZapLogger) WithContext(ctx context.Context) Logger {
	return l.With(Fields(ctx))
}

// toZap converte o mapa em campos zap em ordem determinística.
func toZap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(fields))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// --- Campos de escopo de requisição ---

type ctxKey struct{}

// WithFields devolve um contexto com os campos adicionados aos já existentes.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	merged := make(map[string]interface{}, len(fields))
	for k, v := range Fields(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, merged)
}

// Fields retorna uma cópia dos campos guardados no contexto.
func Fields(ctx context.Context) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	stored, ok := ctx.Value(ctxKey{}).(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]interface{}, len(stored))
	for k, v := range stored {
		out[k] = v
	}
	return out
}
