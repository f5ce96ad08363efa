// Package main provides the CLI entrypoint for lboxed.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/config"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/dictionary"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/logging"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/model"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/puzzle"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/session"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/stats"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/statsui"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/store"
	"github.com/zachary-shah-27/k-partite-graph-letter-boxed/internal/tui"
)

const (
	defaultLang     = "en"
	defaultLogLevel = "info"
	embeddedSource  = "embedded"

	boardWidth  = 48
	boardHeight = 17
)

var (
	playPreset   string
	playSides    string
	playDict     string
	playNoRecord bool
	logLevel     string

	statsPuzzle string
	statsSince  string
	statsLast   int
	statsTop    int
	statsText   bool

	wordsFrom  string
	wordsLang  string
	wordsForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "lboxed",
		Short:             "Letter Boxed on a k-sided board",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupCmd,
		RunE:              runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&playPreset, "preset", puzzle.DefaultPreset, "built-in board (see: lboxed presets)")
	rootCmd.PersistentFlags().StringVar(&playSides, "sides", "", "custom board as comma-separated sides, e.g. CAT,DOG,BIR")
	rootCmd.PersistentFlags().StringVar(&playDict, "dict", "", "word list file (one word per line)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&playNoRecord, "no-record", false, "do not save the game to history")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newPlayWordsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

// setupCmd loads .env and installs a stderr logger for every command.
// Play swaps the logger for a file once the TUI takes over the terminal.
func setupCmd(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if _, err := logging.Setup(resolveLogLevel(cmd, nil), cmd.ErrOrStderr()); err != nil {
		return err
	}
	return nil
}

// resolveLogLevel applies flag, then environment, then config file.
func resolveLogLevel(cmd *cobra.Command, fileLevel *string) string {
	if cmd.Flags().Changed("log-level") {
		return logLevel
	}
	if env := strings.TrimSpace(os.Getenv(logging.EnvLevel)); env != "" {
		return env
	}
	if fileLevel != nil {
		return *fileLevel
	}
	return logLevel
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolvePlayConfig(cmd, fileCfg)

	logFile, err := logging.OpenFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	logger, err := logging.Setup(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	def, err := config.ResolvePuzzle(cfg.Preset, cfg.Sides)
	if err != nil {
		return err
	}
	dict, source, err := resolveDictionary(cfg.DictionaryPath)
	if err != nil {
		return err
	}
	logger.Info().Str("puzzle", def.String()).Str("dictionary", source).Int("words", dict.Size()).Msg("starting game")
	if source == embeddedSource {
		logger.Warn().Msg("no installed word list, using the built-in one")
	}

	var recorder tui.Recorder
	if cfg.Record {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error().Err(cerr).Msg("failed to close db")
			}
		}()
		recorder = st
	}

	m, err := tui.NewModel(def, dict, recorder, logger)
	if err != nil {
		return err
	}
	if source == embeddedSource {
		m.SetNote(builtinListNotice(dict.Size()))
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolvePlayConfig merges the config file under any flags set on cmd.
func resolvePlayConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	preset := playPreset
	sides := config.ParseSides(playSides)
	dict := playDict
	record := !playNoRecord

	applyStringConfig(cmd, "preset", &preset, fileCfg.Play.Preset)
	if len(fileCfg.Play.Sides) > 0 && !cmd.Flags().Changed("sides") {
		sides = fileCfg.Play.Sides
	}
	// A preset chosen on the command line beats sides from the file.
	if cmd.Flags().Changed("preset") && !cmd.Flags().Changed("sides") {
		sides = nil
	}
	applyStringConfig(cmd, "dict", &dict, fileCfg.Play.Dictionary)
	if fileCfg.Play.Record != nil && !cmd.Flags().Changed("no-record") {
		record = *fileCfg.Play.Record
	}

	return model.Config{
		Preset:         preset,
		Sides:          sides,
		DictionaryPath: dict,
		Record:         record,
		LogLevel:       resolveLogLevel(cmd, fileCfg.Log.Level),
	}
}

// resolveDictionary picks an explicit list, then an installed one, then the
// embedded English list.
func resolveDictionary(path string) (*dictionary.Set, string, error) {
	if path != "" {
		set, err := dictionary.Load(path, dictionary.KeepAll)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load word list %s: %w", path, err)
		}
		return set, path, nil
	}
	installed := config.DefaultWordListPath(defaultLang)
	if _, err := os.Stat(installed); err == nil {
		set, err := dictionary.Load(installed, dictionary.KeepAll)
		if err != nil {
			return nil, "", wordListLoadError(installed, err)
		}
		return set, installed, nil
	}
	set, err := dictionary.Default()
	if err != nil {
		return nil, "", err
	}
	return set, embeddedSource, nil
}

// builtinListNotice tells the player how to replace the small built-in list.
func builtinListNotice(size int) string {
	return fmt.Sprintf("Using the built-in list (%d words). For a full list run: lboxed words install --from <file>", size)
}

func wordListLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("installed word list at: %s", path),
		"Reinstall: lboxed words install --from <file> --force",
		fmt.Sprintf("Or remove %s to use the built-in list", path),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in boards",
		Args:  cobra.NoArgs,
		RunE:  runPresetsCmd,
	}
}

func runPresetsCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, name := range puzzle.PresetNames() {
		def, err := puzzle.Preset(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == puzzle.DefaultPreset {
			marker = " (default)"
		}
		if _, err := fmt.Fprintf(out, "%-10s %dx%d  %s%s\n", name, def.K, def.N, def, marker); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newPlayWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play-words WORD...",
		Short: "Play a sequence of words without the TUI",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPlayWordsCmd,
	}
}

func runPlayWordsCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolvePlayConfig(cmd, fileCfg)
	def, err := config.ResolvePuzzle(cfg.Preset, cfg.Sides)
	if err != nil {
		return err
	}
	dict, source, err := resolveDictionary(cfg.DictionaryPath)
	if err != nil {
		return err
	}
	log.Debug().Str("puzzle", def.String()).Str("dictionary", source).Msg("playing words")
	if source == embeddedSource {
		if _, err := fmt.Fprintln(cmd.ErrOrStderr(), builtinListNotice(dict.Size())); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	st, err := session.New(def)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	playErr := playWords(out, st, dict, args)

	width, height, styled := boardWidth, boardHeight, false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		styled = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w < width {
			width = w
		}
	}
	if _, err := fmt.Fprintf(out, "\n%s\n\nWords %d · Letters %d/%d\n",
		tui.RenderBoard(st, width, height, styled), st.AcceptedCount(), st.ConsumedCount(), def.Total()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return playErr
}

// playWords spells and submits each word in order, stopping at the first
// rejection.
func playWords(out io.Writer, st *session.State, dict session.Lookup, words []string) error {
	for _, word := range words {
		for _, r := range word {
			outcome, ok := st.TypeLetter(r)
			if !ok {
				msg := fmt.Sprintf("%q is not on the board.", string(unicode.ToUpper(r)))
				if err := writeLine(out, msg); err != nil {
					return err
				}
				return fmt.Errorf("word %q rejected: %s", word, msg)
			}
			if outcome.Rejected() {
				if err := writeLine(out, st.Status()); err != nil {
					return err
				}
				return fmt.Errorf("word %q rejected: %s", word, outcome)
			}
		}
		outcome := st.SubmitCurrentWord(dict)
		if err := writeLine(out, st.Status()); err != nil {
			return err
		}
		if outcome.Rejected() {
			return fmt.Errorf("word %q rejected: %s", word, outcome)
		}
	}
	return nil
}

func writeLine(out io.Writer, line string) error {
	if _, err := fmt.Fprintln(out, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless path already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		log.Info().Str("path", path).Msg("wrote config template")
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show game history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPuzzle, "puzzle", "", "puzzle name filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&statsTop, "top", stats.DefaultTopWords, "number of words in the usage table")
	cmd.Flags().BoolVar(&statsText, "text", false, "print tables instead of opening the stats viewer")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.StatsConfig{
		Puzzle: statsPuzzle,
		Since:  sinceTime,
		Last:   statsLast,
		Top:    statsTop,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); statsText || !ok || !term.IsTerminal(int(f.Fd())) {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		return renderTextStats(out, report)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderTextStats(w io.Writer, report stats.Report) error {
	if err := stats.RenderSummary(w, report.Games, 5); err != nil {
		return err
	}
	if len(report.Games) == 0 {
		return nil
	}
	if err := stats.RenderGameTable(w, report.Games); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return stats.RenderWordTable(w, report.TopWords)
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage word lists",
	}
	install := &cobra.Command{
		Use:   "install",
		Short: "Install a word list as the default dictionary",
		Args:  cobra.NoArgs,
		RunE:  runWordsInstallCmd,
	}
	install.Flags().StringVar(&wordsFrom, "from", "", "source word list (one word per line)")
	install.Flags().StringVar(&wordsLang, "lang", defaultLang, "language code of the list")
	install.Flags().BoolVar(&wordsForce, "force", false, "overwrite an installed list")
	_ = install.MarkFlagRequired("from")
	cmd.AddCommand(install)
	return cmd
}

func runWordsInstallCmd(cmd *cobra.Command, _ []string) error {
	lang := strings.TrimSpace(strings.ToLower(wordsLang))
	if lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	outPath := config.DefaultWordListPath(lang)
	if !wordsForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}

	set, err := dictionary.Load(wordsFrom, dictionary.FilterForLang(lang))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", wordsFrom, err)
	}
	if err := dictionary.WriteWords(outPath, set.Words()); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	log.Info().Str("path", outPath).Int("words", set.Size()).Msg("installed word list")
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Installed %d words to %s\n", set.Size(), outPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lboxed configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# preset = %q                # Built-in board (see: lboxed presets)
# sides = ["CAT", "DOG", "BIR"]   # Custom board; overrides preset
# dictionary = "/path/to/words.txt"
# record = true                   # Save games to history

[log]
# level = %q                   # trace, debug, info, warn, error
`,
		puzzle.DefaultPreset,
		defaultLogLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

