package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "kanban" {
		t.Fatalf("expected root command name kanban, got %q", rootCmd.Use)
	}
}

func TestRootCommandRegistersGroups(t *testing.T) {
	for _, name := range []string{"board", "column", "task"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == nil || cmd.Name() != name {
			t.Errorf("expected %s command, got %v (%v)", name, cmd, err)
		}
	}
}
