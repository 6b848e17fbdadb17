package tuning

import "testing"

func TestSelect(t *testing.T) {
	if Select(true) != StrategyHighQuality {
		t.Fatalf("rubberband available should select the high quality strategy")
	}
	if Select(false) != StrategyFallback {
		t.Fatalf("missing rubberband should select the fallback strategy")
	}
}

func TestDisplayName(t *testing.T) {
	if got := StrategyHighQuality.DisplayName(); got != "Rubberband (high quality)" {
		t.Fatalf("high quality display = %q", got)
	}
	if got := StrategyFallback.DisplayName(); got != "Asetrate + SoXR (fallback)" {
		t.Fatalf("fallback display = %q", got)
	}
	if got := Strategy("custom filter").DisplayName(); got != "Custom Filter" {
		t.Fatalf("unknown strategy should be title-cased, got %q", got)
	}
}

func TestAttemptOrder(t *testing.T) {
	order := AttemptOrder(StrategyHighQuality)
	if len(order) != 2 || order[0] != StrategyHighQuality || order[1] != StrategyFallback {
		t.Fatalf("unexpected attempt order with rubberband: %v", order)
	}

	order = AttemptOrder(StrategyFallback)
	if len(order) != 1 || order[0] != StrategyFallback {
		t.Fatalf("fallback-only selection must not retry rubberband: %v", order)
	}
}
