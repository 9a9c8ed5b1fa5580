package paths

import (
	"strings"
	"testing"
)

func TestValidateAcceptsAbsolutePaths(t *testing.T) {
	cases := []string{
		"/tmp/file.txt",
		"/",
		"/var/data/nested/dir/",
		"/tmp/./file.txt",
	}
	for _, path := range cases {
		ok, msg := Validate(path)
		if !ok {
			t.Errorf("expected %q to be valid, got message: %s", path, msg)
		}
		if msg != "" {
			t.Errorf("expected empty message for %q, got: %s", path, msg)
		}
	}
}

func TestValidateRejectsRelativePaths(t *testing.T) {
	cases := []string{
		"file.txt",
		"./file.txt",
		"dir/file.txt",
	}
	for _, path := range cases {
		ok, msg := Validate(path)
		if ok {
			t.Errorf("expected %q to be rejected", path)
			continue
		}
		if !strings.Contains(msg, path) || !strings.Contains(msg, "absolute") {
			t.Errorf("message should name the path and mention absolute, got: %s", msg)
		}
	}
}

func TestValidateRejectsParentTraversal(t *testing.T) {
	// Relative traversal attempts fail the absoluteness rule before the
	// segment check ever runs.
	cases := []string{
		"../etc/passwd",
		"..",
		"a/../../../b",
	}
	for _, path := range cases {
		ok, _ := Validate(path)
		if ok {
			t.Errorf("expected %q to be rejected", path)
		}
	}
}

func TestValidateNormalizesAbsoluteDotDot(t *testing.T) {
	// The sandbox rule applies to the normalized form: '..' segments in
	// an absolute path collapse during normalization, so the cleaned
	// target is what the rule sees.
	cases := map[string]string{
		"/tmp/sub/../file": "/tmp/file",
		"/tmp/../../x":     "/x",
	}
	for path, normalized := range cases {
		ok, msg := Validate(path)
		if !ok {
			t.Errorf("expected %q to validate, got: %s", path, msg)
		}
		if got := Normalize(path); got != normalized {
			t.Errorf("expected %q to normalize to %q, got %q", path, normalized, got)
		}
	}
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"/tmp/\x00file",
		"/" + strings.Repeat("a", MaxPathLength+1),
	}
	for _, path := range cases {
		ok, _ := Validate(path)
		if ok {
			t.Errorf("expected %q to be rejected", path)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("/tmp//a/./b/"); got != "/tmp/a/b" {
		t.Fatalf("unexpected normalized path: %s", got)
	}
}
