package model

import "testing"

func TestPostingID(t *testing.T) {
	if got := PostingID("greenhouse", "Acme", "123"); got != "greenhouse:acme:123" {
		t.Errorf("PostingID = %q", got)
	}
	if PostingID("lever", "ACME", "x") != PostingID("lever", " acme ", "x") {
		t.Error("expected org casing and whitespace to not change identity")
	}
}

func TestCompanyKey(t *testing.T) {
	a := Company{Provider: "lever", Org: "Acme"}
	b := Company{Provider: "lever", Org: "acme"}
	if a.Key() != b.Key() {
		t.Error("expected case-insensitive company keys to match")
	}
	c := Company{Provider: "greenhouse", Org: "acme"}
	if a.Key() == c.Key() {
		t.Error("expected different providers to produce different keys")
	}
}

func boolPtr(b bool) *bool { return &b }

func TestInferWorkMode(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		location string
		remote   *bool
		want     WorkMode
	}{
		{"hybrid in title", "Engineer (Hybrid)", "Tel Aviv", nil, WorkModeHybrid},
		{"hybrid beats remote", "Remote / Hybrid Engineer", "", nil, WorkModeHybrid},
		{"hybrid beats remote flag", "Hybrid Engineer", "", boolPtr(true), WorkModeHybrid},
		{"remote in location", "Engineer", "Remote, Israel", nil, WorkModeRemote},
		{"remote flag", "Engineer", "Tel Aviv", boolPtr(true), WorkModeRemote},
		{"work from home", "Engineer", "Work from Home", nil, WorkModeRemote},
		{"onsite in title", "On-site Engineer", "", nil, WorkModeOnsite},
		{"plain city", "Engineer", "Haifa", nil, WorkModeUnknown},
		{"explicit not remote", "Engineer", "Haifa", boolPtr(false), WorkModeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferWorkMode(tt.title, tt.location, tt.remote); got != tt.want {
				t.Errorf("InferWorkMode(%q, %q) = %q, want %q", tt.title, tt.location, got, tt.want)
			}
		})
	}
}
