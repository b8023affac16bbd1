package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent(); ua != "jyotish/"+Version {
		t.Errorf("UserAgent() = %q, want jyotish/%s", ua, Version)
	}
}
