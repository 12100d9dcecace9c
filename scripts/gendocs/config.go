package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/leapstack-labs/formbot/internal/cli/config"
)

// configKey describes one koanf key of config.Config.
type configKey struct {
	Key     string
	Type    string
	Default string
}

// generateConfigDocs writes the configuration key reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	keys := collectKeys("", reflect.ValueOf(*config.Default()))
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "Configuration keys for formbot")
	w.GeneratedMarker()
	w.Header(1, "Configuration")
	w.Paragraph("formbot reads formbot.yaml (or formbot.yml) from the working directory, or the file given with --config. Environment variables and flags override file values.")

	headers := []string{"Key", "Environment variable", "Type", "Default"}
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{
			InlineCode(k.Key),
			InlineCode(envName(k.Key)),
			k.Type,
			k.Default,
		})
	}
	w.Table(headers, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// collectKeys walks the koanf tags of a config struct.
func collectKeys(prefix string, v reflect.Value) []configKey {
	var keys []configKey
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("koanf")
		if tag == "" || f.Tag.Get("yaml") == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			keys = append(keys, collectKeys(key, fv)...)
			continue
		}

		def := fmt.Sprint(fv.Interface())
		switch {
		case fv.IsZero():
			def = ""
		case strings.HasSuffix(key, "secret"):
			def = "(development value)"
		default:
			def = InlineCode(def)
		}
		keys = append(keys, configKey{Key: key, Type: f.Type.String(), Default: def})
	}
	return keys
}

// envName maps a config key to its FORMBOT_ variable.
func envName(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
