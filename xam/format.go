package xam

import (
	"fmt"
	"time"

	"github.com/chazu/xenon/memory"
)

// TimestampKind selects which fixed-width text FormatTimestampString
// produces.
type TimestampKind int

const (
	TimestampDate TimestampKind = iota
	TimestampTime
)

// LocaleService supplies locale-specific date and time text. Locale
// policy lives with the host shell; this package only marshals the
// result into the guest buffer.
type LocaleService interface {
	FormatDate(t time.Time) string
	FormatTime(t time.Time) string
}

// DefaultLocaleService produces the fixed en-US shapes the console's
// dashboard used.
type DefaultLocaleService struct{}

func (DefaultLocaleService) FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", int(t.Month()), t.Day(), t.Year())
}

func (DefaultLocaleService) FormatTime(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// 100ns intervals between the guest epoch (1601-01-01) and the Unix
// epoch.
const filetimeEpochDelta = 116444736000000000

// FiletimeToTime converts a guest FILETIME (100ns ticks since 1601) to a
// UTC time.Time.
func FiletimeToTime(filetime uint64) time.Time {
	ticks := int64(filetime) - filetimeEpochDelta
	return time.Unix(ticks/1e7, (ticks%1e7)*100).UTC()
}

// FormatTimestampString services the date/time text calls. The guest
// buffer of count wide characters is zeroed first, then up to count
// UTF-16 units of the formatted text are copied in. An untranslatable
// buffer is treated as a null pointer: the call quietly does nothing.
func (m *Module) FormatTimestampString(kind TimestampKind, filetime uint64, buffer memory.GuestAddress, count uint32) {
	if count > ^uint32(0)/2 {
		return
	}
	view, err := m.mem.TranslateRange(buffer, count*2)
	if err != nil {
		return
	}
	memory.ZeroRange(view, count*2)

	t := FiletimeToTime(filetime)
	var str string
	switch kind {
	case TimestampDate:
		str = m.locale.FormatDate(t)
	case TimestampTime:
		str = m.locale.FormatTime(t)
	default:
		return
	}
	memory.CopyStringUTF16(view, str, count)
}

// FormatDateString services XamFormatDateString. The first argument is
// unknown and ignored, as on the console.
func (m *Module) FormatDateString(_ uint32, filetime uint64, buffer memory.GuestAddress, count uint32) {
	m.FormatTimestampString(TimestampDate, filetime, buffer, count)
}

// FormatTimeString services XamFormatTimeString.
func (m *Module) FormatTimeString(_ uint32, filetime uint64, buffer memory.GuestAddress, count uint32) {
	m.FormatTimestampString(TimestampTime, filetime, buffer, count)
}
