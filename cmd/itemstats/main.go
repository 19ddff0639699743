// Package main provides the CLI entrypoint for itemstats.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/itemstats/internal/config"
	"github.com/verte-zerg/itemstats/internal/inventory"
	"github.com/verte-zerg/itemstats/internal/itemui"
	"github.com/verte-zerg/itemstats/internal/model"
	"github.com/verte-zerg/itemstats/internal/profile"
	"github.com/verte-zerg/itemstats/internal/rules"
	"github.com/verte-zerg/itemstats/internal/stats"
	"github.com/verte-zerg/itemstats/internal/store"
)

const (
	defaultBarWidth = 20
	defaultWorkers  = 4
	plotHeight      = 12
)

var (
	dbPath      string
	profilePath string
	barWidth    int
	workers     int
	colorOutput bool
	verbose     bool

	showPlugs bool

	curveWidth int

	inventoryClass   string
	inventoryLoadout bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "itemstats",
		Short:         "Inspect item stats computed from manifest definitions",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
		RunE: runBrowseCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dbPath, "db", config.DefaultDBPath(), "manifest database path")
	flags.StringVar(&profilePath, "profile", config.DefaultProfilePath(), "inventory snapshot path")
	flags.IntVar(&barWidth, "bar-width", defaultBarWidth, "width of stat bars")
	flags.IntVar(&workers, "workers", defaultWorkers, "concurrent item builds")
	flags.BoolVar(&colorOutput, "color", false, "force colored plots")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newCurveCmd())
	rootCmd.AddCommand(newInventoryCmd())

	return rootCmd
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// session holds what every stats command needs: settings, the manifest and
// a builder wired to it.
type session struct {
	cfg     config.FileConfig
	store   *store.Store
	defs    *store.Definitions
	builder *stats.Builder
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "bar-width", &barWidth, fileCfg.Display.BarWidth)
	applyBoolConfig(cmd, "color", &colorOutput, fileCfg.Display.Color)
	applyIntConfig(cmd, "workers", &workers, fileCfg.Inventory.Workers)
	applyStringConfig(cmd, "profile", &profilePath, fileCfg.Inventory.Profile)
	if err := validateFlags(); err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	info, err := st.Info(ctx)
	if err != nil {
		closeStore(st)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("manifest not imported yet\nRun: itemstats import <manifest-dir>")
		}
		return nil, fmt.Errorf("failed to read manifest info: %w", err)
	}
	slog.Debug("manifest loaded", "source", info.Source, "imported_at", info.ImportedAt, "items", info.Counts.Items)

	defs := st.Definitions(ctx, slog.Default())
	return &session{
		cfg:     fileCfg,
		store:   st,
		defs:    defs,
		builder: stats.NewBuilder(defs, rules.PlugStatActive),
	}, nil
}

func (s *session) Close() {
	closeStore(s.store)
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		slog.Warn("failed to close db", "err", cerr)
	}
}

func (s *session) customTotal(class model.DestinyClass) []model.StatHash {
	// Selections were validated when the config was loaded.
	hashes, err := s.cfg.CustomTotalFor(class)
	if err != nil {
		return nil
	}
	return hashes
}

func (s *session) loadProfile() (*profile.Profile, error) {
	p, err := profile.Load(profilePath, s.defs)
	if err != nil {
		return nil, err
	}
	if len(p.Skipped) > 0 {
		slog.Warn("items missing from manifest were skipped", "count", len(p.Skipped))
	}
	slog.Debug("profile loaded", "path", profilePath, "items", len(p.Entries))
	return p, nil
}

func (s *session) buildAll(ctx context.Context, p *profile.Profile) ([]inventory.Result, error) {
	return inventory.BuildAll(ctx, p, s.builder, inventory.Options{
		Workers:     workers,
		CustomTotal: s.customTotal,
	})
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	p, err := sess.loadProfile()
	if err != nil {
		return err
	}
	results, err := sess.buildAll(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}

	ui := itemui.NewModel(results, sess.defs, itemui.Options{BarWidth: barWidth})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run item browser: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <manifest-dir>",
		Short: "Import manifest definition tables into the local database",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve manifest dir: %w", err)
	}
	counts, err := st.ImportDir(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("failed to import manifest: %w", err)
	}
	slog.Info("manifest imported", "dir", dir)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d stats, %d stat groups, %d items.\n",
		counts.Stats, counts.StatGroups, counts.Items)
	return err
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <instance-id|item-hash|name>",
		Short: "Show the stats of one item",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	cmd.Flags().BoolVar(&showPlugs, "plugs", false, "also show what each plug option contributes")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	entry, live, err := sess.resolveEntry(ctx, args[0])
	if err != nil {
		return err
	}
	res := sess.builder.Build(stats.Input{
		Item:        entry.Item,
		ItemDef:     entry.Def,
		Live:        live,
		CustomTotal: sess.customTotal(entry.Item.ClassType),
	})

	out := cmd.OutOrStdout()
	title := entry.Item.Name
	if entry.Item.ID != "" {
		title += " (" + entry.Item.ID + ")"
	}
	if res == nil {
		return stats.RenderStats(out, title, nil, barWidth)
	}
	if err := stats.RenderStats(out, title, res.Stats, barWidth); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if showPlugs && len(res.PlugStats) > 0 {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderPlugStats(out, res.PlugStats, sess.plugName, sess.statName); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// resolveEntry finds an item by instance ID in the profile, or previews a
// definition by hash or name.
func (s *session) resolveEntry(ctx context.Context, key string) (profile.Entry, map[string]model.LiveStats, error) {
	if _, err := os.Stat(profilePath); err == nil {
		p, err := s.loadProfile()
		if err != nil {
			return profile.Entry{}, nil, err
		}
		if e, ok := p.Find(key); ok {
			return e, p.Live, nil
		}
	}
	def, err := s.resolveDefinition(ctx, key)
	if err != nil {
		return profile.Entry{}, nil, err
	}
	return profile.Entry{Item: previewItem(def), Def: def}, nil, nil
}

func (s *session) resolveDefinition(ctx context.Context, key string) (*model.ItemDefinition, error) {
	if hash, err := strconv.ParseUint(key, 10, 32); err == nil {
		def, err := s.store.ItemDefinition(ctx, uint32(hash))
		if err != nil {
			return nil, fmt.Errorf("failed to find item %s: %w", key, err)
		}
		return def, nil
	}
	refs, err := s.store.FindItems(ctx, key, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no item matches %q", key)
	}
	if len(refs) > 1 {
		names := make([]string, len(refs))
		for i, r := range refs {
			names[i] = fmt.Sprintf("%s (%d)", r.Name, r.Hash)
		}
		slog.Info("several items match, using the first", "matches", strings.Join(names, ", "))
	}
	return s.store.ItemDefinition(ctx, refs[0].Hash)
}

func previewItem(def *model.ItemDefinition) *model.Item {
	bucket, itemType := model.BucketFor(def.Inventory.BucketTypeHash)
	return &model.Item{
		Hash:      def.Hash,
		Name:      def.DisplayProperties.Name,
		Type:      itemType,
		Bucket:    bucket,
		ClassType: def.ClassType,
	}
}

func (s *session) plugName(hash uint32) string {
	if def, ok := s.defs.Item(hash); ok && def.DisplayProperties.Name != "" {
		return def.DisplayProperties.Name
	}
	return fmt.Sprintf("#%d", hash)
}

func (s *session) statName(hash model.StatHash) string {
	if def, ok := s.defs.Stat(hash); ok && def.DisplayProperties.Name != "" {
		return def.DisplayProperties.Name
	}
	return fmt.Sprintf("#%d", hash)
}

func newCurveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curve <item-hash|name> <stat>",
		Short: "Plot how an item's stat group maps raw values to displayed ones",
		Args:  cobra.ExactArgs(2),
		RunE:  runCurveCmd,
	}
	cmd.Flags().IntVar(&curveWidth, "width", 0, "plot width (default: terminal width)")
	return cmd
}

func runCurveCmd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	def, err := sess.resolveDefinition(ctx, args[0])
	if err != nil {
		return err
	}
	if def.Stats == nil || def.Stats.StatGroupHash == 0 {
		return fmt.Errorf("%s has no stat group", def.DisplayProperties.Name)
	}
	group, err := sess.store.StatGroupDefinition(ctx, def.Stats.StatGroupHash)
	if err != nil {
		return fmt.Errorf("failed to load stat group: %w", err)
	}
	display, err := findDisplay(group, args[1], sess.statName)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s: %s (max %d)", def.DisplayProperties.Name, sess.statName(display.StatHash), display.MaximumValue)
	width := curveWidth
	if width > 0 {
		width = stats.PlotWidthFor(width)
	}
	return stats.RenderCurve(cmd.OutOrStdout(), title, display, width, plotHeight, colorOutput)
}

// findDisplay picks a scaled stat of group by hash or by name, ignoring case.
func findDisplay(group *model.StatGroupDefinition, arg string, statName func(model.StatHash) string) (*model.StatDisplay, error) {
	arg = strings.TrimSpace(arg)
	hash, hashErr := strconv.ParseUint(arg, 10, 32)
	available := make([]string, 0, len(group.ScaledStats))
	for i := range group.ScaledStats {
		d := &group.ScaledStats[i]
		name := statName(d.StatHash)
		if (hashErr == nil && model.StatHash(hash) == d.StatHash) || strings.EqualFold(name, arg) {
			return d, nil
		}
		available = append(available, name)
	}
	return nil, fmt.Errorf("stat %q is not scaled by this item (available: %s)", arg, strings.Join(available, ", "))
}

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Print a stat summary of every armor piece in the profile",
		Args:  cobra.NoArgs,
		RunE:  runInventoryCmd,
	}
	cmd.Flags().StringVar(&inventoryClass, "class", "", "only items for this class (titan, hunter, warlock)")
	cmd.Flags().BoolVar(&inventoryLoadout, "loadout", false, "also print the summed additive stats")
	return cmd
}

func runInventoryCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	p, err := sess.loadProfile()
	if err != nil {
		return err
	}
	if inventoryClass != "" {
		class, err := model.ParseClass(inventoryClass)
		if err != nil {
			return fmt.Errorf("invalid --class value: %w", err)
		}
		p.Entries = filterClass(p.Entries, class)
	}

	results, err := sess.buildAll(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, inventory.Summaries(results)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if inventoryLoadout {
		if _, err := fmt.Fprintln(out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := stats.RenderStats(out, "Loadout", inventory.Loadout(results), barWidth); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func filterClass(entries []profile.Entry, class model.DestinyClass) []profile.Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Item.ClassType == class || e.Item.ClassType == model.ClassUnknown {
			out = append(out, e)
		}
	}
	return out
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# itemstats configuration
# Uncomment a value to enable it. CLI flags override config values.

[display]
# bar-width = %d          # Width of stat bars
# color = false           # Force colored plots

[custom-total]
# Armor stats summed into Custom Total, per class:
# mobility, resilience, recovery, discipline, intellect, strength
# titan = ["resilience", "recovery"]
# hunter = ["mobility", "recovery"]
# warlock = ["recovery", "discipline"]

[inventory]
# profile = %q
# workers = %d            # Concurrent item builds
`,
		defaultBarWidth,
		config.DefaultProfilePath(),
		defaultWorkers,
	)
}

func validateFlags() error {
	if barWidth <= 0 {
		return fmt.Errorf("--bar-width must be > 0")
	}
	if workers <= 0 {
		return fmt.Errorf("--workers must be > 0")
	}
	return nil
}
