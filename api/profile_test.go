package api

import "testing"

func TestRankFor(t *testing.T) {
	cases := []struct {
		rating int
		want   string
	}{
		{0, "Novice"},
		{999, "Novice"},
		{1000, "Bronze"},
		{1499, "Bronze"},
		{1500, "Silver"},
		{1999, "Silver"},
		{2000, "Gold"},
		{2499, "Gold"},
		{2500, "Master"},
		{9000, "Master"},
	}
	for _, c := range cases {
		if got := RankFor(c.rating); got.Name != c.want {
			t.Errorf("RankFor(%d) = %s, want %s", c.rating, got.Name, c.want)
		}
	}
}
