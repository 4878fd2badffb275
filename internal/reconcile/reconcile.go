package reconcile

import (
	"fmt"
	"sort"

	"github.com/nerrad567/roadm-core/internal/channel"
)

// Mode selects how the final channel set is derived from the diff.
type Mode string

// Reconciliation modes.
const (
	// ModeMerge layers the proposal onto the device: channels present
	// on the device but absent from the proposal are carried forward
	// unmodified, never deleted.
	ModeMerge Mode = "merge"

	// ModeReplace makes the device match the proposal exactly:
	// channels not restated in the proposal are dropped.
	ModeReplace Mode = "replace"
)

// ParseMode converts the operator-facing mode string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMerge, ModeReplace:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid mode %q (use %q or %q)", s, ModeMerge, ModeReplace)
	}
}

// Change pairs the proposed and current version of a channel whose
// configuration differs between the two collections.
type Change struct {
	Proposed *channel.Channel
	Current  *channel.Channel
}

// Result holds the classified channel sets. Added, Removed and Final
// are sorted ascending by name (except Final in replace mode, which
// preserves the proposal's document order); Changed is sorted by the
// current-side name.
type Result struct {
	// Added are proposed channels with no counterpart on the device.
	Added []*channel.Channel

	// Removed are device channels not restated in the proposal. In
	// merge mode this is always empty: merge semantics carry such
	// channels forward rather than dropping them, so reporting them
	// as removed would be misleading.
	Removed []*channel.Channel

	// Changed are name-matched pairs whose configuration differs.
	Changed []Change

	// Final is the authoritative channel set to render and apply.
	Final []*channel.Channel
}

// Diff classifies current (device-state origin) against proposed
// (intent origin) and selects the final set according to mode.
//
// Classification: a current channel with no proposed counterpart of
// the same name is removed; a proposed channel with no current
// counterpart is added; a name present on both sides with unequal
// configuration is changed. The merged set is the proposal plus every
// removed channel carried forward, so names present in both take the
// proposed values.
//
// Diff itself cannot fail: every error this stage could surface is
// raised earlier, while the input collections are constructed.
func Diff(current, proposed []*channel.Channel, mode Mode) Result {
	currentByName := make(map[string]*channel.Channel, len(current))
	for _, c := range current {
		currentByName[c.Name] = c
	}
	proposedByName := make(map[string]*channel.Channel, len(proposed))
	for _, p := range proposed {
		proposedByName[p.Name] = p
	}

	added := []*channel.Channel{}
	removed := []*channel.Channel{}
	changed := []Change{}

	for _, c := range current {
		p, ok := proposedByName[c.Name]
		if !ok {
			removed = append(removed, c)
			continue
		}
		if !channel.Equal(p, c) {
			changed = append(changed, Change{Proposed: p, Current: c})
		}
	}

	for _, p := range proposed {
		if _, ok := currentByName[p.Name]; !ok {
			added = append(added, p)
		}
	}

	merged := make([]*channel.Channel, 0, len(proposed)+len(removed))
	merged = append(merged, proposed...)
	merged = append(merged, removed...)

	sortChannels(added)
	sortChannels(removed)
	sortChannels(merged)
	sort.Slice(changed, func(i, j int) bool {
		return channel.Compare(changed[i].Current, changed[j].Current) < 0
	})

	res := Result{
		Added:   added,
		Removed: removed,
		Changed: changed,
	}

	switch mode {
	case ModeReplace:
		res.Final = append([]*channel.Channel{}, proposed...)
	default:
		res.Final = merged
		res.Removed = []*channel.Channel{}
	}

	return res
}

func sortChannels(chs []*channel.Channel) {
	sort.Slice(chs, func(i, j int) bool {
		return channel.Compare(chs[i], chs[j]) < 0
	})
}
