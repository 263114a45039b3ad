package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"shipwatch/internal/cache"
	"shipwatch/internal/config"
	"shipwatch/internal/deploy"
	"shipwatch/internal/git"
	"shipwatch/internal/monitor"
	"shipwatch/internal/notify"
	"shipwatch/internal/provider"
	endpointprovider "shipwatch/internal/provider/endpoint"
	githubprovider "shipwatch/internal/provider/github"
	"shipwatch/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// statusLineWidth bounds the one-shot badge line so commit subjects stay
// readable without wrapping on common terminals.
const statusLineWidth = 120

var (
	configPath string
	repoFlag   string
	limitFlag  int
	noUI       bool
	verbose    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "shipwatch",
	Short: "shipwatch - deploy status watcher for CI pipelines",
	Long: `shipwatch watches the deploy pipeline of a repository and shows a
one-line status badge with the head run's state, elapsed time, and commit.

Polling adapts to pipeline activity: a short interval while a deploy is
queued or in progress, a longer one while the pipeline is idle. When the
head run finishes, shipwatch raises a notification with the outcome.

With no arguments it opens the interactive watch UI. Use --no-ui to run
headless and log transitions instead.`,
	Version:           version,
	PersistentPreRunE: loadConfig,
	RunE:              watch,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the deploy badge line once and exit",
	Long: `Fetch the latest runs and print the badge line a single time.
Falls back to the cached runs, marked "(cached)", when the provider is
unreachable.`,
	RunE: printStatus,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent deploy runs and exit",
	RunE:  printRuns,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/shipwatch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "repository to watch (owner/name or remote URL; default: git remote of cwd)")
	rootCmd.PersistentFlags().IntVar(&limitFlag, "limit", 0, "number of runs to fetch per refresh")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging in headless mode")
	rootCmd.Flags().BoolVar(&noUI, "no-ui", false, "run headless and log deploy transitions")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(runsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	var err error
	cfg, err = config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if repoFlag != "" {
		cfg.Repo = repoFlag
	}
	if limitFlag > 0 {
		cfg.RunLimit = limitFlag
	}
	return nil
}

// resolveRepository picks the watch target: explicit config or flag first,
// then the origin remote of the working directory.
func resolveRepository() (deploy.Repository, error) {
	if cfg.Repo != "" {
		return git.ParseRepo(cfg.Repo)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return deploy.Repository{}, fmt.Errorf("getting current directory: %w", err)
	}
	repo, err := git.DetectRepository(cwd)
	if err != nil {
		return deploy.Repository{}, fmt.Errorf("detecting git remote: %w (pass --repo owner/name)", err)
	}
	return repo, nil
}

func buildProvider(repo deploy.Repository) (provider.RunProvider, error) {
	if cfg.Endpoint.URL != "" {
		return endpointprovider.NewAdapter(cfg.Endpoint.URL, cfg.Endpoint.Token), nil
	}
	registry := provider.NewRegistry()
	registry.Register("github.com", githubprovider.NewAdapter(cfg.GitHub.Token, "", cfg.GitHub.Workflow, cfg.RunLimit))
	return registry.Detect(repo.RemoteURL)
}

// cacheTarget keys the run cache: one file per status endpoint, or per
// repository when polling a CI provider directly.
func cacheTarget(repo deploy.Repository) string {
	if cfg.Endpoint.URL != "" {
		return cfg.Endpoint.URL
	}
	return repo.Slug()
}

func buildTargets() (deploy.Repository, provider.RunProvider, *cache.Store, error) {
	repo, err := resolveRepository()
	if err != nil {
		return deploy.Repository{}, nil, nil, err
	}
	ciProvider, err := buildProvider(repo)
	if err != nil {
		return deploy.Repository{}, nil, nil, err
	}
	store, err := cache.NewStore(cacheTarget(repo))
	if err != nil {
		return deploy.Repository{}, nil, nil, fmt.Errorf("opening run cache: %w", err)
	}
	return repo, ciProvider, store, nil
}

func watch(cmd *cobra.Command, args []string) error {
	repo, ciProvider, store, err := buildTargets()
	if err != nil {
		return err
	}

	if noUI {
		return watchHeadless(repo, ciProvider, store)
	}

	var sink notify.Notifier = notify.Nop{}
	if cfg.Notify.Desktop {
		sink = notify.Desktop{}
	}

	tui.Run(tui.Options{
		Repo:     repo,
		Provider: ciProvider,
		Cache:    store,
		Notifier: sink,
		Active:   cfg.ActiveInterval(),
		Idle:     cfg.IdleInterval(),
	})
	return nil
}

func watchHeadless(repo deploy.Repository, p provider.RunProvider, store *cache.Store) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	sinks := notify.Multi{notify.LogNotifier{Logger: logger}}
	if cfg.Notify.Desktop {
		sinks = append(sinks, notify.Desktop{})
	}

	engine := &monitor.Engine{
		Provider: p,
		Repo:     repo,
		Monitor:  monitor.New(cfg.ActiveInterval(), cfg.IdleInterval()),
		Cache:    store,
		Notifier: sinks,
		Logger:   logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	logger.Info("watching deploys", "repo", repo.Slug())
	if err := engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// fetchRuns fetches live runs, falling back to the cache when the provider
// is unreachable. The bool reports whether the result came from the cache.
func fetchRuns(ctx context.Context, p provider.RunProvider, repo deploy.Repository, store *cache.Store) ([]deploy.Run, bool, error) {
	runs, err := p.ListRuns(ctx, repo)
	if err != nil {
		if cached := store.Load(); len(cached) > 0 {
			return cached, true, nil
		}
		return nil, false, fmt.Errorf("fetching runs: %w", err)
	}
	store.Save(runs)
	return runs, false, nil
}

func printStatus(cmd *cobra.Command, args []string) error {
	repo, ciProvider, store, err := buildTargets()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runs, cached, err := fetchRuns(ctx, ciProvider, repo, store)
	if err != nil {
		return err
	}

	line := tui.RenderBadge(runs, time.Now(), tui.DefaultStyles(), statusLineWidth)
	if cached {
		line += " (cached)"
	}
	fmt.Println(line)
	return nil
}

func printRuns(cmd *cobra.Command, args []string) error {
	repo, ciProvider, store, err := buildTargets()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	runs, cached, err := fetchRuns(ctx, ciProvider, repo, store)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no deploy runs found")
		return nil
	}

	now := time.Now()
	for _, r := range runs {
		d := deploy.Describe(r)
		num := "-"
		if r.RunNumber > 0 {
			num = fmt.Sprintf("#%d", r.RunNumber)
		}
		fmt.Printf("%s %-11s %-7s %-10s %s\n", d.Icon, d.Label, num, deploy.Elapsed(r, now), r.Subject())
	}
	if cached {
		fmt.Println("(cached)")
	}
	return nil
}
