package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/formbot/internal/cli"
	"github.com/leapstack-labs/formbot/internal/cli/config"
)

// generateCLIDocs writes index.md plus one page per top-level command.
// Subcommands such as "folders create" are sections of their parent page.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndex(root)}
	for _, cmd := range documented(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(outDir, name), pages[name], 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documented returns the children of cmd that get a reference entry.
func documented(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() {
			continue
		}
		out = append(out, c)
	}
	return out
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line reference for formbot")
	w.GeneratedMarker()
	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "go install github.com/leapstack-labs/formbot/cmd/formbot@latest")

	w.Header(2, "Commands")
	rows := [][]string{}
	for _, cmd := range documented(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s.md)", InlineCode(cmd.Name()), cmd.Name()),
			codeList(cmd.Aliases),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Aliases", "Description"}, rows)

	w.Header(2, "Global flags")
	writeFlags(w, root.PersistentFlags())

	w.Header(2, "Environment")
	w.Paragraph("Flags override environment variables, which override formbot.yaml. Every configuration key has a variable:")
	keys := collectKeys("", reflect.ValueOf(*config.Default()))
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	env := make([][]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, []string{InlineCode(envName(k.Key)), InlineCode(k.Key)})
	}
	w.Table([]string{"Variable", "Key"}, env)

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cleanDescription(cmd.Short))
	w.GeneratedMarker()
	w.Header(1, cmd.CommandPath())
	writeCommand(w, cmd)

	for _, sub := range documented(cmd) {
		w.Header(2, sub.CommandPath())
		writeCommand(w, sub)
	}
	return w.Bytes()
}

// writeCommand documents one command without its children.
func writeCommand(w *MarkdownWriter, cmd *cobra.Command) {
	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	w.Paragraph(desc)

	if cmd.Runnable() {
		w.CodeBlock("bash", cmd.UseLine())
	}
	if len(cmd.Aliases) > 0 {
		w.Paragraph("Aliases: " + codeList(cmd.Aliases))
	}
	if fs := cmd.LocalNonPersistentFlags(); fs.HasAvailableFlags() {
		writeFlags(w, fs)
	}
	if cmd.Example != "" {
		w.CodeBlock("bash", exampleText(cmd.Example))
	}
}

// writeFlags writes one row per visible flag.
func writeFlags(w *MarkdownWriter, fs *pflag.FlagSet) {
	var rows [][]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name += ", " + InlineCode("-"+f.Shorthand)
		}
		def := ""
		if f.DefValue != "" && f.DefValue != "[]" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{name, def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Default", "Description"}, rows)
}

func codeList(items []string) string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = InlineCode(s)
	}
	return strings.Join(out, ", ")
}

// exampleText strips the two-space indent cobra examples are written with.
func exampleText(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, "  ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
