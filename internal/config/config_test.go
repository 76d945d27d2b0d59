package config

import (
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	t.Run("variable set", func(t *testing.T) {
		t.Setenv("GHOSTDESK_TEST_VAR", "test_value")
		if got := requireEnv("GHOSTDESK_TEST_VAR"); got != "test_value" {
			t.Errorf("requireEnv() = %v, want %v", got, "test_value")
		}
	})

	t.Run("variable not set", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("requireEnv() should have panicked")
			}
		}()
		requireEnv("GHOSTDESK_TEST_VAR_MISSING")
	})
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{name: "valid integer", value: "42", def: 1, expected: 42},
		{name: "invalid integer uses default", value: "not_a_number", def: 7, expected: 7},
		{name: "missing variable uses default", value: "", def: 3, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GHOSTDESK_TEST_INT", tt.value)
			if got := getenvInt("GHOSTDESK_TEST_INT", tt.def); got != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GHOSTDESK_TEST_DURATION", tt.value)
			if got := mustDuration("GHOSTDESK_TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GHOSTDESK_TEST_BOOL", tt.value)
			if got := mustBool("GHOSTDESK_TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single value", input: "127.0.0.1", expected: []string{"127.0.0.1"}},
		{name: "spaces and quotes", input: ` "a", 'b' ,c,, `, expected: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitAndTrim() length = %v, want %v", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GHOSTDESK_REDIS_ADDR", "localhost:6379")
	t.Setenv("GHOSTDESK_LOG_LEVEL", "error")
	t.Setenv("GHOSTDESK_NAME_FETCH_PER_MINUTE", "0")
	t.Setenv("GHOSTDESK_PLATFORM", "darwin")

	cfg := Load()

	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %v, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.ListenAddr != "127.0.0.1:2369" {
		t.Errorf("ListenAddr = %v, want 127.0.0.1:2369", cfg.ListenAddr)
	}
	if cfg.NameFetchPerMinute != 1 {
		t.Errorf("NameFetchPerMinute = %v, want clamped to 1", cfg.NameFetchPerMinute)
	}
	if cfg.Platform != "darwin" {
		t.Errorf("Platform = %v, want darwin", cfg.Platform)
	}
	if len(cfg.AllowedCIDRS) != 2 {
		t.Errorf("AllowedCIDRS = %v, want loopback defaults", cfg.AllowedCIDRS)
	}
	if cfg.KeyringService != "ghostdesk" {
		t.Errorf("KeyringService = %v, want ghostdesk", cfg.KeyringService)
	}
}
