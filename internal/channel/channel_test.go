package channel

import (
	"errors"
	"testing"

	"github.com/nerrad567/roadm-core/internal/plan"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func testPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p, err := plan.New([]plan.Entry{
		{Name: "C1", LowerFrequency: 191_300_000, UpperFrequency: 191_400_000},
		{Name: "C2", LowerFrequency: 191_400_000, UpperFrequency: 191_500_000},
		{Name: "C-band", LowerFrequency: 191_300_000, UpperFrequency: 196_100_000},
	})
	if err != nil {
		t.Fatalf("plan.New() error = %v", err)
	}
	return p
}

func TestFromIntent(t *testing.T) {
	ch, err := FromIntent(IntentDescriptor{
		Port:          strPtr("E1"),
		AttenuationDB: f64Ptr(3.0),
		SpanGHz:       f64Ptr(100),
		CenterTHz:     f64Ptr(191.35),
		Description:   strPtr("uplink to PoP"),
	}, testPlan(t))
	if err != nil {
		t.Fatalf("FromIntent() error = %v", err)
	}

	if ch.Origin != OriginIntent {
		t.Errorf("Origin = %q, want %q", ch.Origin, OriginIntent)
	}
	if ch.Name != "C1" {
		t.Errorf("Name = %q, want %q", ch.Name, "C1")
	}
	if ch.LowerFrequency != 191_300_000 || ch.UpperFrequency != 191_400_000 {
		t.Errorf("bounds = %v..%v, want 191300000..191400000", ch.LowerFrequency, ch.UpperFrequency)
	}
	if ch.Port == nil || *ch.Port != "E1" {
		t.Errorf("Port = %v, want E1", ch.Port)
	}
}

func TestFromIntent_MissingFields(t *testing.T) {
	full := IntentDescriptor{
		Port:          strPtr("E1"),
		AttenuationDB: f64Ptr(3.0),
		SpanGHz:       f64Ptr(100),
		CenterTHz:     f64Ptr(191.35),
	}

	tests := []struct {
		name   string
		mutate func(*IntentDescriptor)
	}{
		{"no port", func(d *IntentDescriptor) { d.Port = nil }},
		{"no attenuation", func(d *IntentDescriptor) { d.AttenuationDB = nil }},
		{"no span", func(d *IntentDescriptor) { d.SpanGHz = nil }},
		{"no centre", func(d *IntentDescriptor) { d.CenterTHz = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := full
			tt.mutate(&desc)
			if _, err := FromIntent(desc, testPlan(t)); !errors.Is(err, ErrMissingField) {
				t.Errorf("FromIntent() error = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestFromIntent_NoPlanMatch(t *testing.T) {
	_, err := FromIntent(IntentDescriptor{
		Port:          strPtr("E1"),
		AttenuationDB: f64Ptr(3.0),
		SpanGHz:       f64Ptr(50),
		CenterTHz:     f64Ptr(191.35),
	}, testPlan(t))
	if !errors.Is(err, plan.ErrNoMatch) {
		t.Errorf("FromIntent() error = %v, want plan.ErrNoMatch", err)
	}
}

func TestFromDeviceState(t *testing.T) {
	ch, err := FromDeviceState(DeviceStateDescriptor{
		Name: "C2",
		Add:  &PortAttenuation{Port: strPtr("E2"), AttenuationDB: f64Ptr(1.5)},
		Drop: &PortAttenuation{Port: strPtr("E2"), AttenuationDB: f64Ptr(1.5)},
	}, testPlan(t))
	if err != nil {
		t.Fatalf("FromDeviceState() error = %v", err)
	}

	if ch.Origin != OriginDeviceState {
		t.Errorf("Origin = %q, want %q", ch.Origin, OriginDeviceState)
	}
	if ch.SpanGHz != 100 {
		t.Errorf("SpanGHz = %v, want 100", ch.SpanGHz)
	}
	if ch.CenterTHz != 191.45 {
		t.Errorf("CenterTHz = %v, want 191.45", ch.CenterTHz)
	}
	if ch.AttenuationDB == nil || *ch.AttenuationDB != 1.5 {
		t.Errorf("AttenuationDB = %v, want 1.5", ch.AttenuationDB)
	}
}

func TestFromDeviceState_WholeBand(t *testing.T) {
	// The sentinel needs no add/drop blocks at all.
	ch, err := FromDeviceState(DeviceStateDescriptor{Name: "C-band"}, testPlan(t))
	if err != nil {
		t.Fatalf("FromDeviceState() error = %v", err)
	}

	if ch.Port != nil || ch.AttenuationDB != nil {
		t.Errorf("sentinel carries port/attenuation: %v/%v", ch.Port, ch.AttenuationDB)
	}
	if ch.LowerFrequency != 191_300_000 || ch.UpperFrequency != 196_100_000 {
		t.Errorf("bounds = %v..%v, want whole band", ch.LowerFrequency, ch.UpperFrequency)
	}
}

func TestFromDeviceState_Inconsistent(t *testing.T) {
	tests := []struct {
		name string
		desc DeviceStateDescriptor
		want error
	}{
		{
			name: "missing add block",
			desc: DeviceStateDescriptor{
				Name: "C1",
				Drop: &PortAttenuation{Port: strPtr("E1"), AttenuationDB: f64Ptr(3.0)},
			},
			want: ErrMissingField,
		},
		{
			name: "missing drop attenuation",
			desc: DeviceStateDescriptor{
				Name: "C1",
				Add:  &PortAttenuation{Port: strPtr("E1"), AttenuationDB: f64Ptr(3.0)},
				Drop: &PortAttenuation{Port: strPtr("E1")},
			},
			want: ErrMissingField,
		},
		{
			name: "port mismatch",
			desc: DeviceStateDescriptor{
				Name: "C1",
				Add:  &PortAttenuation{Port: strPtr("E1"), AttenuationDB: f64Ptr(3.0)},
				Drop: &PortAttenuation{Port: strPtr("E2"), AttenuationDB: f64Ptr(3.0)},
			},
			want: ErrAddDropMismatch,
		},
		{
			name: "attenuation mismatch",
			desc: DeviceStateDescriptor{
				Name: "C1",
				Add:  &PortAttenuation{Port: strPtr("E1"), AttenuationDB: f64Ptr(3.0)},
				Drop: &PortAttenuation{Port: strPtr("E1"), AttenuationDB: f64Ptr(4.0)},
			},
			want: ErrAddDropMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromDeviceState(tt.desc, testPlan(t)); !errors.Is(err, tt.want) {
				t.Errorf("FromDeviceState() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromDeviceState_UnknownName(t *testing.T) {
	_, err := FromDeviceState(DeviceStateDescriptor{
		Name: "C99",
		Add:  &PortAttenuation{Port: strPtr("E1"), AttenuationDB: f64Ptr(3.0)},
		Drop: &PortAttenuation{Port: strPtr("E1"), AttenuationDB: f64Ptr(3.0)},
	}, testPlan(t))
	if !errors.Is(err, plan.ErrNoMatch) {
		t.Errorf("FromDeviceState() error = %v, want plan.ErrNoMatch", err)
	}
}

func TestEqual(t *testing.T) {
	p := testPlan(t)

	mk := func(port string, att float64) *Channel {
		t.Helper()
		ch, err := FromDeviceState(DeviceStateDescriptor{
			Name: "C1",
			Add:  &PortAttenuation{Port: strPtr(port), AttenuationDB: f64Ptr(att)},
			Drop: &PortAttenuation{Port: strPtr(port), AttenuationDB: f64Ptr(att)},
		}, p)
		if err != nil {
			t.Fatalf("FromDeviceState() error = %v", err)
		}
		return ch
	}

	band, err := FromDeviceState(DeviceStateDescriptor{Name: "C-band"}, p)
	if err != nil {
		t.Fatalf("FromDeviceState() error = %v", err)
	}

	if !Equal(mk("E1", 3.0), mk("E1", 3.0)) {
		t.Error("identical channels not equal")
	}
	if Equal(mk("E1", 3.0), mk("E2", 3.0)) {
		t.Error("channels with different ports equal")
	}
	if Equal(mk("E1", 3.0), mk("E1", 4.5)) {
		t.Error("channels with different attenuation equal")
	}
	if !Equal(band, band) {
		t.Error("sentinel not reflexively equal")
	}
	if Equal(band, mk("E1", 3.0)) || Equal(mk("E1", 3.0), band) {
		t.Error("sentinel equal to a per-slot channel")
	}
}

// Two sentinel channels compare equal even when every other field
// would disagree.
func TestEqual_SentinelIgnoresFields(t *testing.T) {
	a := &Channel{Name: WholeBand, Port: strPtr("E1"), AttenuationDB: f64Ptr(1)}
	b := &Channel{Name: WholeBand, Port: strPtr("E9"), AttenuationDB: f64Ptr(9)}
	if !Equal(a, b) {
		t.Error("sentinel channels with differing fields not equal")
	}
}

func TestCompare(t *testing.T) {
	a := &Channel{Name: "C1"}
	b := &Channel{Name: "C2"}

	if Compare(a, b) >= 0 {
		t.Error("Compare(C1, C2) not negative")
	}
	if Compare(b, a) <= 0 {
		t.Error("Compare(C2, C1) not positive")
	}
	if Compare(a, a) != 0 {
		t.Error("Compare(C1, C1) not zero")
	}
}
