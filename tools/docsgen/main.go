package main

import (
	"bytes"
	"context"
	"embed"
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

	"github.com/tfctl/assetq/internal/command"
)

//go:embed templates/*.tmpl
var templates embed.FS

//go:embed examples.yaml
var examplesYAML []byte

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
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	subs, err := subcommands(context.Background())
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: "md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "tldr.tmpl", Folder: filepath.Join(docs, "tldr"), Prefix: "assetq-", Suffix: ".md"},
	}

	date := time.Now().Format("January 2, 2006")
	version := getVersion()

	for _, sub := range subs {
		metadata := TemplateData{Subcommand: sub, Date: date, Version: version}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0o755); err != nil {
				panic(err)
			}

			out, err := render(t.Template, metadata)
			if err != nil {
				panic(err)
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", path)
			if err := os.WriteFile(path, out, 0o644); err != nil {
				panic(err)
			}
		}
	}
}

// subcommands describes every assetq command. Names, usage and flags come
// from the live command tree; descriptions, examples and notes from
// examples.yaml.
func subcommands(ctx context.Context) ([]Subcommand, error) {
	var config Config
	if err := yaml.Unmarshal(examplesYAML, &config); err != nil {
		return nil, err
	}
	extras := map[string]Subcommand{}
	for _, s := range config.Subcommands {
		extras[s.ID] = s
	}

	app, err := command.InitApp(ctx, []string{"assetq"})
	if err != nil {
		return nil, err
	}

	var subs []Subcommand
	for _, cmd := range app.Commands {
		sub := extras[cmd.Name]
		sub.ID = cmd.Name
		if sub.Short == "" {
			sub.Short = cmd.Usage
		}
		if sub.Usage == "" {
			sub.Usage = cmd.UsageText
		}
		sub.Flags = append(flagsOf(cmd), sub.Flags...)

		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	return subs, nil
}

func flagsOf(cmd *cli.Command) []Flag {
	var flags []Flag
	for _, f := range cmd.Flags {
		names := f.Names()
		syntax := make([]string, len(names))
		for i, n := range names {
			if len(n) == 1 {
				syntax[i] = "-" + n
			} else {
				syntax[i] = "--" + n
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if d, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = d.GetUsage()
			if d.TakesValue() && d.IsDefaultVisible() {
				flag.Default = d.GetDefaultText()
			}
		}
		flags = append(flags, flag)
	}
	return flags
}

func render(name string, data TemplateData) ([]byte, error) {
	tmpl, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
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
