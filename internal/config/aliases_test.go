package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAliases(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "aliases"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadAliases_FileNotFound(t *testing.T) {
	cfg, err := LoadAliases(t.TempDir())
	if err != nil {
		t.Fatalf("LoadAliases() returned error for missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadAliases() returned nil config")
	}
	if len(cfg.Aliases) != 0 {
		t.Errorf("expected empty Aliases map, got %v", cfg.Aliases)
	}
}

func TestLoadAliases_CommentsAndBlankLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	writeAliases(t, dir, `# item aliases
# another comment


whole milk = milk
`)

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if len(cfg.Aliases) != 1 {
		t.Errorf("expected 1 alias, got %d: %v", len(cfg.Aliases), cfg.Aliases)
	}
	if got := cfg.Aliases["whole milk"]; got != "milk" {
		t.Errorf("Aliases[\"whole milk\"] = %q, want %q", got, "milk")
	}
}

func TestLoadAliases_InvalidLinesSkipped(t *testing.T) {
	dir := t.TempDir()
	writeAliases(t, dir, `noequalssign
=missingalias
rolls/buns=bread
 =
soda=soft drink
`)

	cfg, err := LoadAliases(dir)
	if err != nil {
		t.Fatalf("LoadAliases() error: %v", err)
	}
	if len(cfg.Aliases) != 2 {
		t.Errorf("expected 2 aliases (only valid lines), got %d: %v", len(cfg.Aliases), cfg.Aliases)
	}
	if got := cfg.Aliases["rolls/buns"]; got != "bread" {
		t.Errorf("Aliases[\"rolls/buns\"] = %q, want %q", got, "bread")
	}
	if got := cfg.Aliases["soda"]; got != "soft drink" {
		t.Errorf("Aliases[\"soda\"] = %q, want %q", got, "soft drink")
	}
}

func TestAliasConfig_Resolve(t *testing.T) {
	cfg := &AliasConfig{Aliases: map[string]string{"whole milk": "milk"}}

	tests := []struct {
		in   string
		want string
	}{
		{"whole milk", "milk"},
		{"milk", "milk"},
		{"bread", "bread"},
	}
	for _, tt := range tests {
		if got := cfg.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	var nilCfg *AliasConfig
	if got := nilCfg.Resolve("eggs"); got != "eggs" {
		t.Errorf("nil Resolve(eggs) = %q, want eggs", got)
	}
}
