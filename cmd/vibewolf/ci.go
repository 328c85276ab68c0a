package vibewolf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

const installStep = "go install github.com/vibewolf/vibewolf@latest"

// ciTemplates maps a provider to its pipeline file and content.
var ciTemplates = map[string]struct{ path, content string }{
	"github": {".github/workflows/vibewolf.yml", `name: vibewolf
on: [push, pull_request]
permissions:
  contents: read
  security-events: write
jobs:
  scan:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: ` + installStep + `
      - run: vibewolf scan --no-update-check --format sarif --output vibewolf.sarif --fail-on high
      - uses: github/codeql-action/upload-sarif@v3
        if: always()
        with:
          sarif_file: vibewolf.sarif
`},
	"gitlab": {".gitlab-ci.yml", `stages: [scan]
vibewolf:
  stage: scan
  image: golang:1.25
  script:
    - ` + installStep + `
    - vibewolf scan --no-update-check --format json --output vibewolf-report.json --fail-on high
  artifacts:
    when: always
    paths:
      - vibewolf-report.json
`},
	"bitbucket": {"bitbucket-pipelines.yml", `pipelines:
  default:
    - step:
        name: VibeWolf Scan
        image: golang:1.25
        caches:
          - go
        script:
          - ` + installStep + `
          - vibewolf scan --no-update-check --format json --output vibewolf-report.json --fail-on high
        artifacts:
          - vibewolf-report.json
`},
	"azure": {"azure-pipelines.yml", `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    ` + installStep + `
    $(go env GOPATH)/bin/vibewolf scan --no-update-check --format json --output vibewolf-report.json --fail-on high
  displayName: 'VibeWolf Scan'
- publish: vibewolf-report.json
  artifact: vibewolf-report
  condition: succeededOrFailed()
`},
}

func ciProviders() []string {
	out := make([]string, 0, len(ciTemplates))
	for p := range ciTemplates {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tpl, ok := ciTemplates[strings.ToLower(provider)]
			if !ok {
				return fmt.Errorf("unknown --provider %q. Supported: %s", provider, strings.Join(ciProviders(), ", "))
			}
			if err := os.MkdirAll(filepath.Dir(tpl.path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(tpl.path, []byte(tpl.content), 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", tpl.path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: "+strings.Join(ciProviders(), " | "))
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
