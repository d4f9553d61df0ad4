package xam

import (
	"sync"

	"github.com/tliron/commonlog"

	"github.com/chazu/xenon/config"
	"github.com/chazu/xenon/content"
	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

var log = commonlog.GetLogger("xam")

// Module is the XAM kernel module: the state shared by every shim in
// this package. It aggregates the guest address space, the kernel object
// table, configuration, and the loader data handed between titles.
type Module struct {
	mem     *memory.Memory
	objects *kernel.ObjectTable
	cfg     *config.Config

	catalog *content.Catalog
	locale  LocaleService

	loaderMu sync.Mutex
	loader   LoaderData

	schemaMu   sync.Mutex
	schemaAddr memory.GuestAddress

	// onTerminate runs when a title launches another title or exits.
	// Owned by the embedding emulator; never called with locks held.
	onTerminate func()
}

// NewModule creates the XAM module over an existing guest address space
// and object table.
func NewModule(mem *memory.Memory, objects *kernel.ObjectTable, cfg *config.Config) *Module {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Module{
		mem:     mem,
		objects: objects,
		cfg:     cfg,
		locale:  DefaultLocaleService{},
	}
}

// Memory returns the guest address space.
func (m *Module) Memory() *memory.Memory { return m.mem }

// Objects returns the kernel object table.
func (m *Module) Objects() *kernel.ObjectTable { return m.objects }

// SetCatalog attaches the content catalog consulted by content
// enumeration. Without a catalog, content enumerators come up empty.
func (m *Module) SetCatalog(c *content.Catalog) { m.catalog = c }

// SetLocaleService replaces the locale service used by the date and time
// formatting shims.
func (m *Module) SetLocaleService(ls LocaleService) {
	if ls == nil {
		ls = DefaultLocaleService{}
	}
	m.locale = ls
}

// SetTerminateHook registers the emulator callback invoked when a title
// requests a title switch or termination.
func (m *Module) SetTerminateHook(fn func()) { m.onTerminate = fn }
