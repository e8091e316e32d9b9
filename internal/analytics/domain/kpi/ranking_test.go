package kpi

import "testing"

func metricsFixture() []AssetMetrics {
	return []AssetMetrics{
		{AssetID: "a-1", Code: "EQ-001", TotalDowntimeHours: 12, FaultFrequency: 3, MaintenanceCost: 1500, HealthScore: 80},
		{AssetID: "a-2", Code: "EQ-002", TotalDowntimeHours: 40, FaultFrequency: 9, MaintenanceCost: 5200, HealthScore: 55},
		{AssetID: "a-3", Code: "EQ-003", TotalDowntimeHours: 5, FaultFrequency: 1, MaintenanceCost: 700, HealthScore: 95},
		{AssetID: "a-4", Code: "EQ-004", TotalDowntimeHours: 40, FaultFrequency: 12, MaintenanceCost: 6100, HealthScore: 48},
		{AssetID: "a-5", Code: "EQ-005", TotalDowntimeHours: 77, FaultFrequency: 18, MaintenanceCost: 9900, HealthScore: 17},
		{AssetID: "a-6", Code: "EQ-006", TotalDowntimeHours: 2, FaultFrequency: 0, MaintenanceCost: 200, HealthScore: 99},
		{AssetID: "a-7", Code: "EQ-007", TotalDowntimeHours: 55, FaultFrequency: 14, MaintenanceCost: 7800, HealthScore: 31},
		{AssetID: "a-8", Code: "EQ-008", TotalDowntimeHours: 21, FaultFrequency: 6, MaintenanceCost: 3300, HealthScore: 66},
	}
}

func TestTopByDowntimeLimitAndOrder(t *testing.T) {
	top := TopByDowntime(metricsFixture(), 5)
	if len(top) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(top))
	}

	expected := []string{"a-5", "a-7", "a-2", "a-4", "a-8"}
	for i, id := range expected {
		if top[i].AssetID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, top[i].AssetID)
		}
	}
	// a-2 and a-4 tie at 40 hours; fetch order breaks the tie.
	if top[2].AssetID != "a-2" || top[3].AssetID != "a-4" {
		t.Fatal("tied downtime entries must keep input order")
	}
}

func TestRankOutputNeverExceedsCandidates(t *testing.T) {
	items := metricsFixture()[:3]
	top := TopByDowntime(items, 10)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
}

func TestTopByFaultFrequency(t *testing.T) {
	top := TopByFaultFrequency(metricsFixture(), 0)
	if len(top) != DefaultFaultFrequencyLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultFaultFrequencyLimit, len(top))
	}
	if top[0].AssetID != "a-5" {
		t.Fatalf("expected a-5 first, got %s", top[0].AssetID)
	}
	for i := 1; i < len(top); i++ {
		if top[i].FaultFrequency > top[i-1].FaultFrequency {
			t.Fatal("fault frequencies must be non-increasing")
		}
	}
}

func TestTopByMaintenanceCost(t *testing.T) {
	top := TopByMaintenanceCost(metricsFixture(), 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	if top[0].AssetID != "a-5" || top[1].AssetID != "a-7" || top[2].AssetID != "a-4" {
		t.Fatalf("unexpected cost order: %s %s %s", top[0].AssetID, top[1].AssetID, top[2].AssetID)
	}
}

func TestCriticalAssetsFilterAndOrder(t *testing.T) {
	calc := NewCalculator(DefaultScoringConfig())

	critical := CriticalAssets(metricsFixture(), calc, 5)
	if len(critical) != 3 {
		t.Fatalf("expected 3 critical assets, got %d", len(critical))
	}
	for i, item := range critical {
		if item.HealthScore >= 50 {
			t.Fatalf("entry %d not critical: score %v", i, item.HealthScore)
		}
		if i > 0 && critical[i-1].HealthScore > item.HealthScore {
			t.Fatal("critical assets must be sorted ascending by score")
		}
	}
	if critical[0].AssetID != "a-5" {
		t.Fatalf("worst asset first: expected a-5, got %s", critical[0].AssetID)
	}
}

func TestCriticalAssetsEmptyWhenAllHealthy(t *testing.T) {
	calc := NewCalculator(DefaultScoringConfig())
	items := []AssetMetrics{
		{AssetID: "a-1", HealthScore: 70},
		{AssetID: "a-2", HealthScore: 50},
		{AssetID: "a-3", HealthScore: 100},
	}

	critical := CriticalAssets(items, calc, 5)
	if len(critical) != 0 {
		t.Fatalf("expected empty critical list, got %d entries", len(critical))
	}
}

func TestWorstPerformersDefaultLimit(t *testing.T) {
	top := WorstPerformers(metricsFixture(), 0)
	if len(top) != 8 {
		t.Fatalf("expected all 8 under default limit 10, got %d", len(top))
	}
	if top[0].AssetID != "a-5" {
		t.Fatalf("expected a-5 first, got %s", top[0].AssetID)
	}
}
