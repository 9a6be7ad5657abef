package loyalty

import (
	"math"
	"testing"
)

func TestTierOfBoundaries(t *testing.T) {
	cases := []struct {
		points int64
		want   string
	}{
		{0, "Bronze"},
		{99, "Bronze"},
		{100, "Silver"},
		{299, "Silver"},
		{300, "Gold"},
		{599, "Gold"},
		{600, "Platinum"},
		{math.MaxInt64, "Platinum"},
	}
	for _, tc := range cases {
		tier, _ := TierOf(tc.points)
		if tier.Name != tc.want {
			t.Fatalf("TierOf(%d) = %s, want %s", tc.points, tier.Name, tc.want)
		}
	}
}

func TestTierOfNegativeMapsToBottom(t *testing.T) {
	tier, progress := TierOf(-50)
	if tier.Name != "Bronze" {
		t.Fatalf("TierOf(-50) = %s, want Bronze", tier.Name)
	}
	if progress != 0 {
		t.Fatalf("expected zero progress, got %f", progress)
	}
}

func TestTierOfProgress(t *testing.T) {
	_, progress := TierOf(200)
	if progress <= 0 || progress >= 100 {
		t.Fatalf("expected mid-tier progress in (0,100), got %f", progress)
	}

	_, topProgress := TierOf(10_000)
	if topProgress != 0 {
		t.Fatalf("expected zero progress at top tier, got %f", topProgress)
	}
}

func TestValidateTiersRejectsGaps(t *testing.T) {
	broken := []Tier{
		{Name: "A", Min: 0, Max: 99},
		{Name: "B", Min: 150, Max: math.MaxInt64},
	}
	if err := validateTiers(broken); err == nil {
		t.Fatal("expected error for gapped table")
	}

	unanchored := []Tier{{Name: "A", Min: 10, Max: math.MaxInt64}}
	if err := validateTiers(unanchored); err == nil {
		t.Fatal("expected error for table not starting at 0")
	}

	capped := []Tier{{Name: "A", Min: 0, Max: 500}}
	if err := validateTiers(capped); err == nil {
		t.Fatal("expected error for capped top tier")
	}
}
