package bizdex

import (
	"testing"
	"time"

	dombiz "github.com/kailas-cloud/bizdex/internal/domain/business"
)

func TestBusinessRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := Business{
		ID: "a", Name: "A", CategoryID: "legal", Lat: -26.1, Lng: 28.05,
		IsRemote: true, Rating: 4.5, YearsOfExperience: 7,
		Images: []string{"x.jpg"}, CreatedAt: now, UpdatedAt: now,
	}

	internal := toInternalBusiness(&in)
	if internal.DistanceKm != nil || internal.Score != nil {
		t.Error("derived fields must not cross into the domain")
	}
	out := fromInternalBusiness(&internal)
	if out.ID != in.ID || out.Lat != in.Lat || out.YearsOfExperience != 7 || !out.CreatedAt.Equal(now) {
		t.Errorf("round trip = %+v", out)
	}
}

func TestFromInternalBusiness_DerivedFields(t *testing.T) {
	dist, score := 0.42, 0.8
	b := fromInternalBusiness(&dombiz.Business{ID: "a", DistanceKm: &dist, Score: &score})
	if b.DistanceLabel() != "420 m away" {
		t.Errorf("label = %q", b.DistanceLabel())
	}
	if *b.Score != 0.8 {
		t.Errorf("score = %v", *b.Score)
	}

	if (&Business{}).DistanceLabel() != "" {
		t.Error("unknown distance must have empty label")
	}
}

func TestToInternalPatch(t *testing.T) {
	years := 12
	name := "Renamed"
	p := toInternalPatch(&BusinessPatch{Name: &name, YearsOfExperience: &years})
	if p.Name == nil || *p.Name != name {
		t.Errorf("name = %v", p.Name)
	}
	if p.Years == nil || *p.Years != 12 {
		t.Errorf("years = %v", p.Years)
	}
	if p.Rating != nil {
		t.Error("unset field must stay nil")
	}
}

func TestWeightsConversion(t *testing.T) {
	w := DefaultWeights()
	if got := fromRankingWeights(w.toRanking()); got != w {
		t.Errorf("got %+v, want %+v", got, w)
	}
	if w.Distance != 0.30 {
		t.Errorf("default distance weight = %v, want 0.30", w.Distance)
	}
}

func TestCoordinatesToGeo(t *testing.T) {
	var c *Coordinates
	if c.toGeo() != nil {
		t.Error("nil coordinates must map to nil")
	}
	g := (&Coordinates{Lat: 1, Lng: 2}).toGeo()
	if g.Lat != 1 || g.Lng != 2 {
		t.Errorf("got %+v", g)
	}
}
