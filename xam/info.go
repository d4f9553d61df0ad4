package xam

import (
	"github.com/chazu/xenon/kernel"
	"github.com/chazu/xenon/memory"
)

// GetLanguage returns the configured dashboard language.
func (m *Module) GetLanguage() uint32 { return m.cfg.System.Language }

// GetAVPack returns the configured A/V pack identifier.
func (m *Module) GetAVPack() uint32 { return m.cfg.System.AVPack }

// GetGameRegion returns the configured game region.
func (m *Module) GetGameRegion() uint32 { return m.cfg.System.GameRegion }

// GetSystemVersion returns the configured dashboard version.
func (m *Module) GetSystemVersion() uint32 { return m.cfg.System.SystemVersion }

// FeatureEnabled reports no optional features.
func (m *Module) FeatureEnabled(_ uint32) uint32 { return 0 }

// CreateEnumeratorHandle is a stub on real hardware as well; titles get
// their enumerators from the service-specific creation calls.
func (m *Module) CreateEnumeratorHandle() kernel.XError {
	return kernel.XErrorInvalidParameter
}

// GetPrivateEnumStructureFromHandle is likewise a rejected stub.
func (m *Module) GetPrivateEnumStructureFromHandle(_ uint32) kernel.XError {
	return kernel.XErrorInvalidParameter
}

// QueryLiveHive rejects every query; there is no Live registry hive to
// serve. The console's status for this is an NTSTATUS, not a Win32
// error.
func (m *Module) QueryLiveHive(_ string, _ memory.GuestAddress, _ uint32, _ uint32) kernel.XStatus {
	return kernel.XStatusInvalidParameter1
}

// CustomRegisterDynamicActions accepts and discards the registration.
func (m *Module) CustomRegisterDynamicActions() {}

// Empty stub schema binary handed to titles that ask for the online
// schema.
var onlineSchemaBin = []byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x2C, 0x00, 0x00,
	0x00, 0x2C, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x2C, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x18,
}

// GetOnlineSchema lazily allocates a guest {pointer, size} header
// followed by the schema blob, and returns the header's guest address.
// Repeated calls return the same allocation. Returns the zero sentinel
// if the system heap is exhausted.
func (m *Module) GetOnlineSchema() memory.GuestAddress {
	m.schemaMu.Lock()
	defer m.schemaMu.Unlock()

	if m.schemaAddr != 0 {
		return m.schemaAddr
	}

	total := uint32(8 + len(onlineSchemaBin))
	addr := m.mem.SystemHeapAlloc(total)
	if addr == 0 {
		return 0
	}
	view, err := m.mem.TranslateRange(addr, total)
	if err != nil {
		panic("xam: online schema allocation not addressable")
	}
	copy(view[8:], onlineSchemaBin)
	memory.StoreUint32(view, 0, uint32(addr)+8)
	memory.StoreUint32(view, 4, uint32(len(onlineSchemaBin)))

	m.schemaAddr = addr
	return addr
}
