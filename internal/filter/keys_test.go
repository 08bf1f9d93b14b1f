package filter

import (
	"strings"
	"testing"

	"github.com/JeromeFabre77/SpotWork/internal/core/model"
)

func TestCriteriaKey_Deterministic(t *testing.T) {
	c := model.Criteria{City: "Paris", Category: model.Cafe, Wifi: boolp(true), Search: "wifi"}
	if CriteriaKey(c) != CriteriaKey(c) {
		t.Fatal("same criteria must yield the same key")
	}
}

func TestCriteriaKey_NormalizesCaseAndWhitespace(t *testing.T) {
	a := model.Criteria{City: "Paris", Search: "  café   sympa "}
	b := model.Criteria{City: "PARIS", Search: "café sympa"}
	if CriteriaKey(a) != CriteriaKey(b) {
		t.Fatalf("equivalent criteria should share a key:\n%s\n%s", CriteriaKey(a), CriteriaKey(b))
	}
}

func TestCriteriaKey_DistinguishesCriteria(t *testing.T) {
	keys := map[string]model.Criteria{}
	for _, c := range []model.Criteria{
		{},
		{City: "Paris"},
		{City: "Lyon"},
		{Category: model.Library},
		{Wifi: boolp(true)},
		{Wifi: boolp(false)},
		{Search: "Paris"},
	} {
		k := CriteriaKey(c)
		if prev, dup := keys[k]; dup {
			t.Fatalf("key collision between %v and %v: %s", prev, c, k)
		}
		keys[k] = c
	}
}

func TestCriteriaKey_BoundsReadableSegment(t *testing.T) {
	long := model.Criteria{Search: strings.Repeat("bibliothèque ", 40)}
	k := CriteriaKey(long)
	// crit: prefix + 120 bounded chars + :f= + 16 hex digits
	if len(k) > len("crit:")+120+len(":f=")+16 {
		t.Fatalf("key too long (%d): %s", len(k), k)
	}
	if !strings.HasPrefix(k, "crit:") {
		t.Fatalf("key missing prefix: %s", k)
	}
}

func TestSanitizeForKey(t *testing.T) {
	cases := []struct{ in, want string }{
		{"city=paris|q=", "city=paris|q="},
		{"a  b", "a_b"},
		{"café!!", "caf-"},
		{"a--b__c", "a-b_c"},
	}
	for _, c := range cases {
		if got := sanitizeForKey(c.in); got != c.want {
			t.Errorf("sanitizeForKey(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
