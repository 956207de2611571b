// Command docsgen writes markdown and man pages for every keydiff subcommand.
// Flags and usage come from the live command tree; examples and notes come
// from docs/templates/keydiff.yaml.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/keydiff/internal/command"
)

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	var config Config
	data, err := os.ReadFile(filepath.Join(docs, "templates", "keydiff.yaml"))
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			panic(err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"keydiff"})
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: filepath.Join(docs, "templates", "keydiff.md.tmpl"), Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: filepath.Join(docs, "templates", "keydiff.man.tmpl"), Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "keydiff-", Suffix: ".1"},
	}

	for _, cmd := range app.Commands {
		sub := merge(cmd, lookup(config, cmd.Name))

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			name := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", name)
			if err := render(t.Template, name, metadata); err != nil {
				panic(err)
			}
		}
	}
}

// lookup returns the documented subcommand with id, or one with only the id
// set.
func lookup(config Config, id string) Subcommand {
	for _, s := range config.Subcommands {
		if s.ID == id {
			return s
		}
	}
	return Subcommand{ID: id}
}

// merge fills sub from the command definition. Documented flag descriptions
// win over the usage strings in code.
func merge(cmd *cli.Command, sub Subcommand) Subcommand {
	if sub.Short == "" {
		sub.Short = cmd.Usage
	}
	if sub.Usage == "" {
		sub.Usage = cmd.UsageText
	}

	documented := map[string]Flag{}
	for _, f := range sub.Flags {
		documented[f.ID] = f
	}

	var flags []Flag
	for _, f := range cmd.Flags {
		names := f.Names()
		flag := Flag{ID: names[0], Syntax: syntax(names)}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = df.GetUsage()
			flag.Default = df.GetValue()
		}
		if d, ok := documented[flag.ID]; ok {
			if d.Description != "" {
				flag.Description = d.Description
			}
			if d.Default != "" {
				flag.Default = d.Default
			}
		}
		flags = append(flags, flag)
	}
	sort.Slice(flags, func(i, j int) bool {
		return flags[i].ID < flags[j].ID
	})
	sub.Flags = flags

	return sub
}

// syntax renders flag names the way they are typed, long form first.
func syntax(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		if len(n) == 1 {
			parts[i] = "-" + n
		} else {
			parts[i] = "--" + n
		}
	}
	return strings.Join(parts, ", ")
}

func render(tmplFile, outFile string, data TemplateData) error {
	tmpl, err := template.ParseFiles(tmplFile)
	if err != nil {
		return err
	}

	file, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
