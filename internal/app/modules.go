package app

import (
	"github.com/specialistvlad/bddgrid/internal/registry"
	"github.com/specialistvlad/bddgrid/modules/isheld"
	"github.com/specialistvlad/bddgrid/modules/isnear"
	"github.com/specialistvlad/bddgrid/modules/locatedat"
	"github.com/specialistvlad/bddgrid/modules/pickplace"
	"github.com/specialistvlad/bddgrid/modules/variations"
)

// coreModules is the definitive list of all modules that are compiled into
// the bddgrid binary.
var coreModules = []registry.Module{
	&locatedat.Module{},
	&isheld.Module{},
	&isnear.Module{},
	&pickplace.Module{},
	&variations.Module{},
}
