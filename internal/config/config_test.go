package config

import "testing"

func TestSessionTTLFromEnv(t *testing.T) {
	t.Setenv("SESSION_TTL_MINS", "45")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SessionTTLMins != 45 {
		t.Errorf("SessionTTLMins = %d, want 45", cfg.SessionTTLMins)
	}
}

func TestSessionTTLDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SessionTTLMins != 30 {
		t.Errorf("SessionTTLMins = %d, want default 30", cfg.SessionTTLMins)
	}
}

func TestSessionTTLRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "0"} {
		t.Setenv("SESSION_TTL_MINS", bad)
		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.SessionTTLMins != 30 {
			t.Errorf("SessionTTLMins for %q = %d, want fallback 30", bad, cfg.SessionTTLMins)
		}
	}
}
