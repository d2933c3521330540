package keys

import (
	"strings"
	"testing"

	"github.com/kiyer/argoquery/internal/core/model"
)

func fptr(f float64) *float64 { return &f }

func TestKeyNormalizesWhitespaceAndCase(t *testing.T) {
	in := model.Intent{QueryType: model.QueryStatistic}
	a := Key("Average  Temperature in the   Arabian Sea", in, 5)
	b := Key("average temperature in the arabian sea", in, 5)
	if a != b {
		t.Fatalf("normalized questions must share a key: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, Prefix) {
		t.Fatalf("key %q missing prefix %q", a, Prefix)
	}
}

func TestKeyFoldsNearbyCoordinates(t *testing.T) {
	base := model.Intent{QueryType: model.QueryProximity}
	a := base
	a.Latitude, a.Longitude = fptr(13.0800), fptr(80.2700)
	b := base
	b.Latitude, b.Longitude = fptr(13.0801), fptr(80.2701)

	ka := Key("nearest floats at 13.0800, 80.2700", a, 5)
	kb := Key("nearest floats at 13.0801, 80.2701", b, 5)
	if ka != kb {
		t.Fatalf("points in the same cell must share a key: %q vs %q", ka, kb)
	}

	far := base
	far.Latitude, far.Longitude = fptr(-34.0), fptr(18.0)
	kf := Key("nearest floats at -34.0, 18.0", far, 5)
	if kf == ka {
		t.Fatal("distant points must not share a key")
	}
}

func TestKeySeparatesQueryTypes(t *testing.T) {
	q := "temperature in 2024"
	a := Key(q, model.Intent{QueryType: model.QueryStatistic}, 5)
	b := Key(q, model.Intent{QueryType: model.QueryTimeSeries}, 5)
	if a == b {
		t.Fatal("different query types must not share a key")
	}
}

func TestQuestionKeyNormalizes(t *testing.T) {
	a := QuestionKey("  Average   Temperature in 2024 ")
	b := QuestionKey("average temperature in 2024")
	if a != b {
		t.Fatalf("normalized questions must share a key: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, Prefix) {
		t.Fatalf("key %q must carry the flushable prefix", a)
	}
	if QuestionKey("salinity in 2024") == a {
		t.Fatal("different questions must not share a key")
	}
}
