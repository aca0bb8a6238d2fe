package cron

import (
	"testing"
)

func TestRegistry_Register_Jobs(t *testing.T) {
	warmed := 0
	Register("catalog:warm:spare", "@every 5m", func(args ...string) {
		warmed++
	})
	defer Unregister("catalog:warm:spare")

	j, ok := Jobs()["catalog:warm:spare"]
	if !ok {
		t.Fatal("catalog:warm:spare not in Jobs()")
	}
	if j.Schedule != "@every 5m" {
		t.Errorf("Schedule = %q, want @every 5m", j.Schedule)
	}
	j.Run()
	if warmed != 1 {
		t.Error("Run did not execute the job body")
	}
}

func TestRegistry_Register_DuplicatePanics(t *testing.T) {
	Register("storage:compact", "@hourly", func(...string) {})
	defer Unregister("storage:compact")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("storage:compact", "@daily", func(...string) {})
}
