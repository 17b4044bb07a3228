// Package print provides the log block, which hands a value to the host's
// log output.
package print

import (
	"context"
	"errors"

	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/internal/ctxlog"
	"github.com/vk/rpgbaker/internal/descriptor"
	"github.com/vk/rpgbaker/internal/value"
)

// Module implements the block.Module interface for this package.
type Module struct{}

// Register registers the log kind with the engine.
func (m *Module) Register(r *block.Registry) {
	r.RegisterKind(descriptor.KindLog, &LogKind{})
}

var logFields = []block.Field{block.AnyField("what")}

// LogKind logs any value and evaluates to Void.
type LogKind struct{}

func (k *LogKind) Description() string   { return "Logs a value to the standard output." }
func (k *LogKind) Fields() []block.Field { return logFields }

func (k *LogKind) Create() block.Block {
	return &Log{what: block.NewSlot()}
}

func (k *LogKind) FromDescriptor(r block.Reifier, d descriptor.Instance) (block.Block, error) {
	b := &Log{what: block.NewSlot()}
	if err := block.Fill(r, d, block.Bind(logFields[0], &b.what)); err != nil {
		return nil, err
	}
	return b, nil
}

// Log is a reified log block.
type Log struct {
	what block.Slot
}

func (b *Log) Evaluate(ctx context.Context, host block.Host) (value.Value, error) {
	if host == nil {
		return value.Void(), errors.New("log: no host to log to")
	}
	v, err := block.ResolveField(ctx, host, descriptor.Builtin(descriptor.KindLog), "what", &b.what)
	if err != nil {
		return value.Void(), err
	}
	ctxlog.FromContext(ctx).Debug("Log block evaluated.", "value", v.String())
	host.Log(ctx, v)
	return value.Void(), nil
}
