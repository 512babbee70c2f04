// isoabbrev - ISO 4 abbreviation of journal titles
//
// Usage:
//
//	isoabbrev [flags] < titles.txt          Abbreviate titles from stdin, one per line
//	isoabbrev -journals list.txt [flags]    Write full and abbreviated @STRING files
//
// The journal list holds one journal per line, "title<TAB>bibtex-key". Two
// files are written, preserving the order of the list:
//
//	journalLong.bib     @STRING{key = "International Journal of ..."}
//	journalShort.bib    @STRING{key = "Int. J. ..."}
//
// Settings may also come from a YAML file (-config or ISOABBREV_CONFIG) and
// from ISOABBREV_* environment variables. Flags win.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/npillmayer/isoabbrev"
	"github.com/npillmayer/isoabbrev/bibstring"
	"github.com/npillmayer/isoabbrev/ltwa"
	"github.com/npillmayer/isoabbrev/shortwords"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("isoabbrev", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	ltwaPath := fs.String("ltwa", "", "LTWA rule table (tab, semicolon or comma separated)")
	shortPath := fs.String("shortwords", "", "exempt-word list, one word per line (default: built-in list)")
	journals := fs.String("journals", "", "journal list, one \"title<TAB>key\" per line")
	longOut := fs.String("long", "", "output file for full titles")
	shortOut := fs.String("short", "", "output file for abbreviated titles")
	langs := fs.String("lang", "", "comma separated LTWA language tags of the titles")
	workers := fs.Int("workers", -1, "number of parallel workers (0 = one per CPU)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "isoabbrev: %v\n", err)
		return 1
	}
	override(&cfg.LTWA, *ltwaPath)
	override(&cfg.ShortWords, *shortPath)
	override(&cfg.Journals, *journals)
	override(&cfg.LongOut, *longOut)
	override(&cfg.ShortOut, *shortOut)
	override(&cfg.Languages, *langs)
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "isoabbrev: %v\n", err)
		return 1
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "isoabbrev: %v\n", err)
		return 1
	}
	if cfg.Journals != "" {
		err = writeJournalFiles(ctx, engine, cfg, stderr)
	} else {
		err = abbreviateStream(ctx, engine, stdin, stdout, cfg.Workers)
	}
	if err != nil {
		fmt.Fprintf(stderr, "isoabbrev: %v\n", err)
		return 1
	}
	return 0
}

func override(setting *string, flagValue string) {
	if flagValue != "" {
		*setting = flagValue
	}
}

func buildEngine(cfg *Config) (*isoabbrev.Engine, error) {
	rules, err := os.ReadFile(cfg.LTWA)
	if err != nil {
		return nil, fmt.Errorf("rule table: %w", err)
	}
	words := shortwords.Default
	if cfg.ShortWords != "" {
		data, err := os.ReadFile(cfg.ShortWords)
		if err != nil {
			return nil, fmt.Errorf("exempt words: %w", err)
		}
		words = string(data)
	}
	var opts []isoabbrev.Option
	if cfg.Languages != "" {
		opts = append(opts, isoabbrev.WithLanguages(cfg.Languages))
	}
	return ltwa.Build(string(rules), words, opts...)
}

type journal struct {
	title, key string
}

// readJournals reads "title<TAB>key" lines. Lines without a key are
// reported and dropped.
func readJournals(r io.Reader, stderr io.Writer) ([]journal, error) {
	var list []journal
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		title, key, found := strings.Cut(text, "\t")
		title, key = strings.TrimSpace(title), strings.TrimSpace(key)
		if !found || key == "" || title == "" {
			fmt.Fprintf(stderr, "isoabbrev: journal list line %d: expected \"title<TAB>key\", skipped\n", line)
			continue
		}
		list = append(list, journal{title: title, key: key})
	}
	return list, scanner.Err()
}

func writeJournalFiles(ctx context.Context, engine *isoabbrev.Engine, cfg *Config, stderr io.Writer) error {
	in, err := os.Open(cfg.Journals)
	if err != nil {
		return err
	}
	defer in.Close()
	list, err := readJournals(in, stderr)
	if err != nil {
		return fmt.Errorf("journal list: %w", err)
	}
	titles := make([]string, len(list))
	for i, j := range list {
		titles[i] = j.title
	}
	abbrevs, err := engine.AbbreviateAll(ctx, titles, cfg.Workers)
	if err != nil {
		return err
	}
	if err := writeBibFile(cfg.LongOut, list, titles); err != nil {
		return err
	}
	return writeBibFile(cfg.ShortOut, list, abbrevs)
}

func writeBibFile(path string, list []journal, values []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bibstring.NewWriter(f)
	for i, j := range list {
		if err = w.WriteString(j.key, values[i]); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return w.Flush()
}

func abbreviateStream(ctx context.Context, engine *isoabbrev.Engine, stdin io.Reader, stdout io.Writer, workers int) error {
	var titles []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		titles = append(titles, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	abbrevs, err := engine.AbbreviateAll(ctx, titles, workers)
	if err != nil {
		return err
	}
	out := bufio.NewWriter(stdout)
	for _, a := range abbrevs {
		fmt.Fprintln(out, a)
	}
	return out.Flush()
}
