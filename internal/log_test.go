package internal

import "testing"

func TestNewDefaultLogger_LevelFromEnv(t *testing.T) {
	cases := []struct {
		env  string
		want LogLevel
	}{
		{"ERROR", LogLevelError},
		{"WARN", LogLevelWarn},
		{"INFO", LogLevelInfo},
		{"DEBUG", LogLevelDebug},
		{"", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, c := range cases {
		t.Setenv("LOG_LEVEL", c.env)
		if got := NewDefaultLogger().GetLevel(); got != c.want {
			t.Errorf("LOG_LEVEL=%q: level = %d, want %d", c.env, got, c.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	if got := NewLogger(LogLevelWarn).GetLevel(); got != LogLevelWarn {
		t.Errorf("level = %d, want %d", got, LogLevelWarn)
	}
}
