package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64 // simulates DB sequence value
	lastIncr     int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Strict passes (key, implicit +1); cached passes (key, increment).
	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	m.lastIncr = increment

	return &mockRow{val: m.currentValue}
}

var testPeriod = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("OT")

	num, err := svc.GetNextNumber(ctx, cfg, nil, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "OT-2026-00001" {
		t.Errorf("expected OT-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "OT-2026-00002" {
		t.Errorf("expected OT-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("COT")

	opts := &Options{
		Strategy:  StrategyCached,
		RangeSize: 10,
	}

	// First call allocates range 1..10 with a single DB round trip.
	num, err := svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "COT-2026-00001" {
		t.Errorf("expected COT-2026-00001, got %s", num)
	}
	if q.lastIncr != 10 {
		t.Errorf("expected range reservation of 10, got %d", q.lastIncr)
	}

	// Next nine calls are served from memory.
	for i := 2; i <= 10; i++ {
		num, err = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if num != "COT-2026-00010" {
		t.Errorf("expected COT-2026-00010, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value 10 after one reservation, got %d", q.currentValue)
	}

	// Eleventh call triggers a new reservation.
	num, err = svc.GetNextNumber(ctx, cfg, opts, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "COT-2026-00011" {
		t.Errorf("expected COT-2026-00011, got %s", num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value 20 after second reservation, got %d", q.currentValue)
	}
}

func TestFormatNumber_NoYear(t *testing.T) {
	svc := New(&mockQuerier{})
	cfg := Config{Prefix: "CM", IncludeYear: false, PadWidth: 4, ResetPeriod: "never"}

	num, err := svc.GetNextNumber(context.Background(), cfg, nil, testPeriod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "CM-0001" {
		t.Errorf("expected CM-0001, got %s", num)
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]int64{
		"FV-2026-00042": 42,
		"CM-0007":       7,
		"garbage":       -1,
	}
	for in, want := range cases {
		if got := ParseNumber(in); got != want {
			t.Errorf("ParseNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
