package discovery

import "testing"

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"acme", true},
		{"acme-corp", true},
		{"acme_corp", true},
		{"a1b2", true},
		{"Acme", true},
		{"a", false},
		{"", false},
		{"42", false},       // not enough letters
		{"a-", false},       // must end alphanumeric
		{"-acme", false},    // must start alphanumeric
		{"careers", false},  // reserved
		{"jobs", false},     // reserved
		{"en-us", false},    // reserved
		{"acme corp", false},
	}
	for _, tt := range tests {
		if got := validSlug(tt.slug); got != tt.want {
			t.Errorf("validSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}

func TestProviderFromHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"boards.greenhouse.io", "greenhouse"},
		{"www.boards.greenhouse.io", "greenhouse"},
		{"jobs.lever.co", "lever"},
		{"jobs.ashbyhq.com", "ashby"},
		{"acme.recruitee.com", "recruitee"},
		{"apply.workable.com", "workable"},
		{"acme.myworkdayjobs.com", "workday"},
		{"acme.wd5.myworkdayjobs.com", "workday"},
		{"example.com", ""},
		{"lever.co.evil.com", ""},
	}
	for _, tt := range tests {
		if got := providerFromHost(tt.host); got != tt.want {
			t.Errorf("providerFromHost(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestExtractOrg(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		url      string
		want     string
	}{
		{"greenhouse plain", "greenhouse", "https://boards.greenhouse.io/acme", "acme"},
		{"greenhouse job page", "greenhouse", "https://boards.greenhouse.io/acme/jobs/123", "acme"},
		{"query stripped", "greenhouse", "https://boards.greenhouse.io/Acme?gh_src=abc#top", "acme"},
		{"lever", "lever", "https://jobs.lever.co/acme-corp/abc-123", "acme-corp"},
		{"reserved segment", "lever", "https://jobs.lever.co/jobs/abc", ""},
		{"no path", "greenhouse", "https://boards.greenhouse.io/", ""},
		{"recruitee subdomain", "recruitee", "https://acme.recruitee.com/o/engineer", "acme"},
		{"recruitee bare host", "recruitee", "https://recruitee.com/something", ""},
		{"recruitee nested subdomain", "recruitee", "https://careers.acme.recruitee.com/o/x", "acme"},
		{"workday subdomain only", "workday", "https://acme.myworkdayjobs.com/", "acme"},
		{"workday wdn hop", "workday", "https://acme.wd5.myworkdayjobs.com/", "acme"},
		{"workday path tenant", "workday", "https://acme.wd5.myworkdayjobs.com/Acme-Careers/job/x", "acme-careers"},
		{"workday locale then tenant", "workday", "https://acme.wd1.myworkdayjobs.com/en-US/acmejobs/job/x", "acmejobs"},
		{"workday reserved path falls to host", "workday", "https://acme.wd5.myworkdayjobs.com/wday/cxs/x", "acme"},
		{"workday dc-prefixed host", "workday", "https://wd3.myworkdayjobs.com/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractOrg(tt.provider, tt.url); got != tt.want {
				t.Errorf("extractOrg(%q, %q) = %q, want %q", tt.provider, tt.url, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"acme", "Acme"},
		{"acme-corp", "Acme Corp"},
		{"acme_labs-ai", "Acme Labs Ai"},
	}
	for _, tt := range tests {
		if got := displayName(tt.slug); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
}

func TestCareersURL(t *testing.T) {
	if got := careersURL("greenhouse", "acme"); got != "https://boards.greenhouse.io/acme" {
		t.Errorf("unexpected greenhouse careers URL: %s", got)
	}
	if got := careersURL("recruitee", "acme"); got != "https://acme.recruitee.com" {
		t.Errorf("unexpected recruitee careers URL: %s", got)
	}
	if got := careersURL("workday", "acme"); got != "https://acme.myworkdayjobs.com/acme" {
		t.Errorf("unexpected workday careers URL: %s", got)
	}
	if got := careersURL("unknown", "acme"); got != "" {
		t.Errorf("expected empty URL for unknown provider, got %s", got)
	}
}
