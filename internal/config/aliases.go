package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// AliasConfig maps item spellings found in transaction data to the canonical
// item name they should be counted under, e.g. "whole milk" = "milk".
type AliasConfig struct {
	Aliases map[string]string
}

// Resolve returns the canonical name for item, or item itself.
func (c *AliasConfig) Resolve(item string) string {
	if c == nil {
		return item
	}
	if canonical, ok := c.Aliases[item]; ok {
		return canonical
	}
	return item
}

// LoadAliases reads {dir}/aliases. A missing file yields an empty config
// without an error. Lines are "alias = canonical"; blank lines, # comments
// and malformed lines are skipped.
func LoadAliases(dir string) (*AliasConfig, error) {
	cfg := &AliasConfig{
		Aliases: make(map[string]string),
	}

	f, err := os.Open(filepath.Join(dir, "aliases"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		alias := strings.TrimSpace(line[:idx])
		canonical := strings.TrimSpace(line[idx+1:])
		if alias == "" || canonical == "" {
			continue
		}

		cfg.Aliases[alias] = canonical
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
