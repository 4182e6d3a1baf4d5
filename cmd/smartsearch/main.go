// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/smartsearch"
	"github.com/poiesic/smartsearch/ai"
	"github.com/poiesic/smartsearch/core"
	"github.com/poiesic/smartsearch/search"
	"github.com/poiesic/smartsearch/sources"
)

func main() {
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	recordsFlag := &cli.StringFlag{
		Name:     "records",
		Aliases:  []string{"r"},
		Usage:    "Path to a JSON array of contact records",
		Required: true,
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Print results as JSON",
	}
	limitFlag := &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Maximum number of results to print (0 for all)",
	}

	return &cli.App{
		Name:  "smartsearch",
		Usage: "Natural-language search over contact records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory holding custom sources",
				Value:   "./smartsearch_db",
				EnvVars: []string{"SMARTSEARCH_DB"},
			},
			&cli.BoolFlag{
				Name:  "memory",
				Usage: "Keep custom sources in memory only",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a natural-language query against contact records",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags:     []cli.Flag{recordsFlag, limitFlag, jsonFlag},
			},
			{
				Name:   "batch",
				Usage:  "Run one query per line of a file against contact records",
				Action: batchCommand,
				Flags: []cli.Flag{
					recordsFlag,
					&cli.StringFlag{
						Name:     "queries",
						Aliases:  []string{"q"},
						Usage:    "Path to a file with one query per line",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of queries searched concurrently",
						Value: search.DefaultPoolSize,
					},
					limitFlag,
					jsonFlag,
				},
			},
			{
				Name:      "filter",
				Usage:     "Apply structured filters to contact records; every filter must match",
				ArgsUsage: "[QUERY...]",
				Action:    filterCommand,
				Flags: []cli.Flag{
					recordsFlag,
					&cli.StringFlag{
						Name:  "filters",
						Usage: "Path to a JSON filter object; skips classification",
					},
					&cli.StringFlag{
						Name:  "aux",
						Usage: "Path to a JSON object with matchedPersonIds and orgSectorMap",
					},
					&cli.StringFlag{
						Name:    "classifier-host",
						Usage:   "Classifier service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"SMARTSEARCH_CLASSIFIER_HOST"},
					},
					&cli.StringFlag{
						Name:    "classifier-model",
						Usage:   "Classifier model name",
						EnvVars: []string{"SMARTSEARCH_CLASSIFIER_MODEL"},
					},
					&cli.StringFlag{
						Name:    "api-token",
						Usage:   "Token for the classifier service",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
					&cli.IntFlag{
						Name:  "max-attempts",
						Usage: "Requests made when the classifier returns malformed JSON",
						Value: 1,
					},
					limitFlag,
					jsonFlag,
				},
			},
			{
				Name:  "sources",
				Usage: "Inspect and extend the source catalog",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List known sources",
						Action: sourcesListCommand,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "custom",
								Usage: "Only list custom sources",
							},
						},
					},
					{
						Name:   "add",
						Usage:  "Add a custom source",
						Action: sourcesAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "name",
								Usage:    "Source name",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "category",
								Usage:    "Source category (relationship, event, digital, outbound, inbound, other)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "description",
								Usage: "Optional description",
							},
						},
					},
					{
						Name:   "categories",
						Usage:  "List source categories",
						Action: sourcesCategoriesCommand,
					},
					{
						Name:      "resolve",
						Usage:     "Show which source a free-text value resolves to",
						ArgsUsage: "VALUE",
						Action:    sourcesResolveCommand,
					},
				},
			},
		},
	}
}

func openEngine(c *cli.Context, opts ...smartsearch.EngineOption) (*smartsearch.Engine, error) {
	if c.Bool("memory") {
		opts = append(opts, smartsearch.WithInMemory())
	}
	opts = append(opts, smartsearch.WithLogger(slog.Default()))
	return smartsearch.NewEngine(c.Context, c.String("db"), opts...)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	people, err := loadRecords(c.String("records"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	var monitor search.SearchMonitor
	if slog.Default().Enabled(c.Context, slog.LevelDebug) {
		monitor = search.NewLogMonitor(slog.Default())
	}
	results := engine.Searcher().SearchWithMonitor(query, people, monitor)

	return printResults(c.App.Writer, results, people, c.Int("limit"), c.Bool("json"))
}

func batchCommand(c *cli.Context) error {
	queries, err := loadQueries(c.String("queries"))
	if err != nil {
		return err
	}

	people, err := loadRecords(c.String("records"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c, smartsearch.WithSearchOptions(search.WithPoolSize(c.Int("workers"))))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	batch, err := engine.Searcher().SearchBatch(c.Context, queries, people)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if c.Bool("json") {
		type queryResults struct {
			Query   string               `json:"query"`
			Results []*core.SearchResult `json:"results"`
		}
		out := make([]queryResults, len(queries))
		for i, q := range queries {
			out[i] = queryResults{Query: q, Results: limit(batch[i], c.Int("limit"))}
		}
		return writeJSON(w, out)
	}

	for i, q := range queries {
		fmt.Fprintf(w, "== %s\n", q)
		if err := printResults(w, batch[i], people, c.Int("limit"), false); err != nil {
			return err
		}
	}
	return nil
}

func filterCommand(c *cli.Context) error {
	people, err := loadRecords(c.String("records"))
	if err != nil {
		return err
	}

	fc := &core.FilterContext{}
	if path := c.String("aux"); path != "" {
		if err := readJSONFile(path, fc); err != nil {
			return fmt.Errorf("failed to read aux data: %w", err)
		}
	}

	var filters *core.Filters
	var opts []smartsearch.EngineOption
	if path := c.String("filters"); path != "" {
		filters = &core.Filters{}
		if err := readJSONFile(path, filters); err != nil {
			return fmt.Errorf("failed to read filters: %w", err)
		}
	} else {
		query := strings.Join(c.Args().Slice(), " ")
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("either --filters or a query is required")
		}
		if c.String("classifier-model") == "" {
			return fmt.Errorf("classifier-model is required to classify a query")
		}
		opts = append(opts, smartsearch.WithClassifierConfig(ai.NewConfig(
			ai.WithClassifierHost(c.String("classifier-host")),
			ai.WithClassifierModel(c.String("classifier-model")),
			ai.WithAPIToken(c.String("api-token")),
			ai.WithMaxAttempts(c.Int("max-attempts")),
		)))
	}

	engine, err := openEngine(c, opts...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	if filters == nil {
		filters, err = engine.Classify(c.Context, strings.Join(c.Args().Slice(), " "))
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}
		slog.Debug("classified filters", "filters", fmt.Sprintf("%+v", *filters))
	}

	results, err := engine.Searcher().ApplyFilters(filters, people, fc)
	if err != nil {
		return err
	}
	return printResults(c.App.Writer, results, people, c.Int("limit"), c.Bool("json"))
}

func sourcesListCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	list := engine.Sources()
	if c.Bool("custom") {
		list = engine.Registry().Custom()
	}
	for _, s := range list {
		fmt.Fprintf(c.App.Writer, "%-20s %-12s %s\n", s.Name, s.Category, s.Description)
	}
	return nil
}

func sourcesAddCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	source := core.Source{
		Name:        c.String("name"),
		Category:    core.SourceCategory(strings.ToLower(c.String("category"))),
		Description: c.String("description"),
	}
	before := len(engine.Sources())
	if err := engine.AddSource(c.Context, source); err != nil {
		return err
	}
	if len(engine.Sources()) == before {
		fmt.Fprintf(c.App.Writer, "source %q already exists\n", source.Name)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "added source %q (%s)\n", strings.TrimSpace(source.Name), source.Category)
	return nil
}

func sourcesCategoriesCommand(c *cli.Context) error {
	for _, cat := range sources.Categories() {
		fmt.Fprintf(c.App.Writer, "%-13s %-13s %s\n", cat.Id, cat.Label, cat.Color)
	}
	return nil
}

func sourcesResolveCommand(c *cli.Context) error {
	value := strings.Join(c.Args().Slice(), " ")
	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	resolved := engine.ResolveSource(value)
	if resolved == nil {
		return fmt.Errorf("source value is required")
	}
	fmt.Fprintf(c.App.Writer, "%s (%s)\n", resolved.Name, sources.CategoryInfo(resolved.Category).Label)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func loadRecords(path string) ([]*core.Person, error) {
	var people []*core.Person
	if err := readJSONFile(path, &people); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	kept := people[:0]
	for _, p := range people {
		if p == nil {
			continue
		}
		if err := core.ValidatePerson(p); err != nil {
			if errors.Is(err, core.ErrInvalidTimestamp) {
				slog.Warn("skipping record with future createdAt", "id", p.Id, "createdAt", p.CreatedAt)
				continue
			}
			return nil, err
		}
		kept = append(kept, p)
	}
	return kept, nil
}

func loadQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var queries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, scanner.Err()
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func limit(results []*core.SearchResult, n int) []*core.SearchResult {
	if n > 0 && len(results) > n {
		return results[:n]
	}
	return results
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResults(w io.Writer, results []*core.SearchResult, people []*core.Person, n int, asJSON bool) error {
	results = limit(results, n)
	if asJSON {
		return writeJSON(w, results)
	}

	byId := make(map[int64]*core.Person, len(people))
	for _, p := range people {
		if p != nil {
			byId[p.Id] = p
		}
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No matches")
		return nil
	}
	for i, r := range results {
		name := fmt.Sprintf("#%d", r.PersonId)
		if p, ok := byId[r.PersonId]; ok {
			name = p.FullName()
			if p.Org != "" {
				name += " (" + p.Org + ")"
			}
		}
		fmt.Fprintf(w, "%d. %s [%d]\n", i+1, name, r.Score)
		for _, e := range r.Explanations {
			fmt.Fprintf(w, "   - %s\n", e)
		}
	}
	return nil
}
