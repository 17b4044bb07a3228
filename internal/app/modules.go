package app

import (
	"github.com/vk/rpgbaker/internal/block"
	"github.com/vk/rpgbaker/modules"
)

// coreModules is the definitive list of all modules that are compiled into
// the rpgbaker binary.
var coreModules = modules.Core()

// CoreModules returns a copy of the compiled-in module list.
func CoreModules() []block.Module {
	return append([]block.Module(nil), coreModules...)
}
