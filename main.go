package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/jnorm/jnorm/internal/config"
	"github.com/jnorm/jnorm/internal/errors"
	"github.com/jnorm/jnorm/internal/models"
	"github.com/jnorm/jnorm/internal/normalizer"
	"github.com/jnorm/jnorm/internal/query"
	"github.com/jnorm/jnorm/internal/render"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string           `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Config  string           `help:"Path to config file. Defaults to the nearest .jnorm.yml." type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Tree   TreeCmd   `cmd:"" help:"Render the normalized value as an indented tree."`
	Raw    RawCmd    `cmd:"" default:"1" help:"Print the normalized value as JSON."`
	Search SearchCmd `cmd:"" help:"Search keys and values for a substring."`
	Get    GetCmd    `cmd:"" help:"Extract the value at a path like metadata.score or items[0].id."`
	Stats  StatsCmd  `cmd:"" help:"Count nodes by type."`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jnorm"),
		kong.Description("Normalize malformed or escaped JSON-like text and inspect the result."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jnorm version %s", Version)},
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = ctx.Run(&Context{Debug: CLI.Debug || cfg.Dev.Debug, Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// loadConfig resolves the configuration: an explicit --config path, the
// nearest config file up the directory tree, or defaults.
func loadConfig() (*config.Config, error) {
	if CLI.Config != "" {
		return config.LoadConfig(CLI.Config)
	}
	if path := config.FindConfigFile(); path != "" {
		return config.LoadConfig(path)
	}
	return config.NewConfig(), nil
}

// TreeCmd renders the normalized value as an indented text tree.
type TreeCmd struct {
	Depth int `help:"Maximum tree depth before eliding (0 uses the configured limit)."`
}

// Run executes the tree command
func (c *TreeCmd) Run(app *Context) error {
	result, err := normalizeInput(app)
	if err != nil {
		return err
	}
	depth := c.Depth
	if depth <= 0 {
		depth = app.Config.Limits.TreeDepth
	}
	fmt.Print(render.Tree(result.Primary, depth))
	return nil
}

// RawCmd prints the normalized value as JSON, pretty by default.
type RawCmd struct {
	Compact bool   `help:"Emit compact JSON instead of pretty-printed." short:"c"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

// Run executes the raw command
func (c *RawCmd) Run(app *Context) error {
	result, err := normalizeInput(app)
	if err != nil {
		return err
	}
	return writeOutput(serialize(result.Primary, app.Config, c.Compact), c.Output)
}

// SearchCmd prints the path of every key or value matching a query.
type SearchCmd struct {
	Query  string `arg:"" help:"Case-insensitive substring to match against keys and values."`
	Values bool   `help:"Also print the value at each matching path."`
	Limit  int    `help:"Maximum matches to print (0 uses the configured cap)."`
}

// Run executes the search command
func (c *SearchCmd) Run(app *Context) error {
	result, err := normalizeInput(app)
	if err != nil {
		return err
	}

	hits := query.Search(result.Primary, c.Query)
	fmt.Fprintf(os.Stderr, "Matches: %d\n", len(hits))

	limit := c.Limit
	if limit <= 0 {
		limit = app.Config.Limits.MaxSearchResults
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}

	for _, hit := range hits {
		if !c.Values {
			fmt.Println(hit)
			continue
		}
		value, err := query.Extract(result.Primary, hit)
		if err != nil {
			// A hit that cannot be re-extracted is a warning, not fatal.
			fmt.Fprintf(os.Stderr, "Extraction error at %s: %v\n", hit, err)
			fmt.Println(hit)
			continue
		}
		fmt.Printf("%s: %s\n", hit, render.Compact(value))
	}
	return nil
}

// GetCmd extracts and prints the single value at a path.
type GetCmd struct {
	Path    string `arg:"" help:"Path to extract, e.g. metadata.score or items[0].id."`
	Compact bool   `help:"Emit compact JSON instead of pretty-printed." short:"c"`
	Output  string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
}

// Run executes the get command
func (c *GetCmd) Run(app *Context) error {
	result, err := normalizeInput(app)
	if err != nil {
		return err
	}
	value, err := query.Extract(result.Primary, strings.TrimSpace(c.Path))
	if err != nil {
		return err
	}
	return writeOutput(serialize(value, app.Config, c.Compact), c.Output)
}

// StatsCmd prints per-type node counts.
type StatsCmd struct{}

// Run executes the stats command
func (c *StatsCmd) Run(app *Context) error {
	result, err := normalizeInput(app)
	if err != nil {
		return err
	}
	stats := query.CountNodes(result.Primary)
	fmt.Printf("Objects:     %d\n", stats.Objects)
	fmt.Printf("Arrays:      %d\n", stats.Arrays)
	fmt.Printf("Strings:     %d\n", stats.Strings)
	fmt.Printf("Numbers:     %d\n", stats.Numbers)
	fmt.Printf("Booleans:    %d\n", stats.Booleans)
	fmt.Printf("Nulls:       %d\n", stats.Nulls)
	fmt.Printf("Total nodes: %d\n", stats.TotalNodes)
	return nil
}

// serialize renders value per the compact flag and configured indent.
func serialize(value models.Value, cfg *config.Config, compact bool) string {
	if compact || !cfg.Output.Pretty {
		return render.Compact(value)
	}
	return render.PrettyIndent(value, cfg.Output.Indent)
}

// normalizeInput reads the raw text, runs the normalization pipeline and
// reports diagnostics. Partial success still returns a result; only a
// fully unrecoverable input is an error.
func normalizeInput(app *Context) (models.Result, error) {
	text, err := readInput()
	if err != nil {
		return models.Result{}, err
	}

	result := normalizer.Normalize(text)
	if app.Debug {
		fmt.Fprintf(os.Stderr, "normalized %d entrie(s) with %d error(s)\n", len(result.Entries), len(result.Errors))
	}
	for _, diag := range result.Errors {
		fmt.Fprintf(os.Stderr, "%s\n", diag)
	}
	if !result.HasPrimary {
		return result, errors.NewInputError("no JSON value could be recovered from the input", errors.ErrNothingRecovered)
	}
	return result, nil
}

// readInput reads raw text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		return readFile(CLI.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		return readInteractiveInput()
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return stripBOM(string(data)), nil
}

// readFile reads raw text from a file path
func readFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return stripBOM(string(data)), nil
}

// stripBOM drops a leading UTF-8 byte-order mark, if present.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

// readInteractiveInput provides an interactive mode for users to paste text
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jnorm interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON-like text below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	text := builder.String()
	if len(text) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing input...")
	return stripBOM(text), nil
}

// writeOutput writes serialized JSON to file or stdout
func writeOutput(code string, outputPath string) error {
	if outputPath != "" {
		err := os.WriteFile(outputPath, []byte(code+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", outputPath), err)
		}
		fmt.Fprintf(os.Stderr, "JSON written to %s\n", outputPath)
		return nil
	}

	_, err := fmt.Println(code)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
