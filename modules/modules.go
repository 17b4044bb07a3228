// Package modules lists the block modules compiled into the engine.
package modules

import (
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/modules/arith"
	"github.com/vk/rpgbaker/modules/flow"
	"github.com/vk/rpgbaker/modules/literal"
	"github.com/vk/rpgbaker/modules/print"
	"github.com/vk/rpgbaker/modules/screen"
)

// Core returns the definitive list of builtin modules. Together they cover
// every descriptor.BuiltinKind.
func Core() []block.Module {
	return []block.Module{
		&literal.Module{},
		&arith.Module{},
		&flow.Module{},
		&print.Module{},
		&screen.Module{},
	}
}
