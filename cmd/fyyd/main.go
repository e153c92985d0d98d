// Command fyyd is a terminal client for the fyyd podcast directory:
// search, browse and discover podcasts, and inspect the authenticated
// account after an OAuth2 login.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sieben/fyyd-go/fyyd"
	"github.com/sieben/fyyd-go/internal/config"
	"github.com/sieben/fyyd-go/internal/logging"
)

var Version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: fyyd <command> [args]

commands:
  search <term>     search podcasts and episodes
  podcast <id>      show a single podcast
  episodes <id>     list episodes of a podcast
  categories        show the category tree
  hot               show currently popular podcasts
  latest            show recently added podcasts
  login             run the OAuth2 authorization code flow
  account           show the authenticated account (after login)`)
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment, cfg.LogLevel)
	logger.Debug("fyyd starting", slog.String("version", Version))

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var client *fyyd.Client
	if cfg.OAuthConfigured() {
		client = fyyd.NewOAuthClient(httpClient, logger, cfg.Credentials())
	} else {
		client = fyyd.NewClient(httpClient, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("search: missing term")
		}
		return runSearch(ctx, client, strings.Join(args[1:], " "))
	case "podcast":
		id, err := parseID(args[1:])
		if err != nil {
			return fmt.Errorf("podcast: %w", err)
		}
		return runPodcast(ctx, client, id)
	case "episodes":
		id, err := parseID(args[1:])
		if err != nil {
			return fmt.Errorf("episodes: %w", err)
		}
		return runEpisodes(ctx, client, id)
	case "categories":
		return runCategories(ctx, client)
	case "hot":
		return runDiscover(ctx, client, true)
	case "latest":
		return runDiscover(ctx, client, false)
	case "login":
		return runLogin(ctx, client)
	case "account":
		return runAccount(ctx, client)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// runSearch queries podcasts and episodes in parallel.
func runSearch(ctx context.Context, client *fyyd.Client, term string) error {
	var (
		podcasts []fyyd.Podcast
		episodes []fyyd.Episode
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		podcasts = client.SearchPodcasts(gctx, term)
		return nil
	})
	g.Go(func() error {
		episodes = client.SearchEpisodes(gctx, term)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if len(podcasts) == 0 && len(episodes) == 0 {
		fmt.Printf("no results for %q\n", term)
		return nil
	}

	fmt.Printf("podcasts (%d):\n", len(podcasts))
	for _, p := range podcasts {
		fmt.Printf("  %8d  %s\n", p.ID, p.Title)
	}
	fmt.Printf("episodes (%d):\n", len(episodes))
	for _, e := range episodes {
		fmt.Printf("  %8d  %s\n", e.ID, e.Title)
	}
	return nil
}

func runPodcast(ctx context.Context, client *fyyd.Client, id int64) error {
	p := client.Podcast(ctx, id)
	if p == nil {
		fmt.Printf("podcast %d not found\n", id)
		return nil
	}

	fmt.Printf("%s (#%d)\n", p.Title, p.ID)
	if p.Subtitle != "" {
		fmt.Println(p.Subtitle)
	}
	fmt.Printf("language: %s  episodes: %d  subscribers: %d\n", p.Language, p.EpisodeCount, p.Subscribers)
	fmt.Printf("feed: %s\n", p.XMLURL)
	return nil
}

func runEpisodes(ctx context.Context, client *fyyd.Client, id int64) error {
	p := client.PodcastWithEpisodes(ctx, id, 0, 50)
	if p == nil {
		fmt.Printf("podcast %d not found\n", id)
		return nil
	}

	fmt.Printf("%s - %d episodes\n", p.Title, len(p.Episodes))
	for _, e := range p.Episodes {
		fmt.Printf("  %8d  %-10s  %s\n", e.ID, e.PubDate, e.Title)
	}
	return nil
}

func runCategories(ctx context.Context, client *fyyd.Client) error {
	categories := client.Categories(ctx)
	if categories == nil {
		fmt.Println("categories unavailable")
		return nil
	}

	for _, cat := range categories {
		fmt.Printf("%4d  %s\n", cat.ID, cat.Name)
		for _, child := range cat.Children {
			fmt.Printf("      %4d  %s\n", child.ID, child.Name)
		}
	}
	return nil
}

func runDiscover(ctx context.Context, client *fyyd.Client, hot bool) error {
	var list []fyyd.Podcast
	if hot {
		list = client.HotPodcasts(ctx, 20)
	} else {
		list = client.LatestPodcasts(ctx, 20)
	}

	if list == nil {
		fmt.Println("directory unavailable")
		return nil
	}
	for _, p := range list {
		fmt.Printf("  %8d  %s\n", p.ID, p.Title)
	}
	return nil
}

// runLogin walks the authorization code flow from the terminal: print
// the authorization URL, wait for the user to paste the code delivered
// to the redirect URI, exchange it, and prove the login by fetching the
// account. Tokens live for this process only.
func runLogin(ctx context.Context, client *fyyd.Client) error {
	oauth := client.OAuth()
	if oauth == nil {
		return fmt.Errorf("set FYYD_CLIENT_ID, FYYD_CLIENT_SECRET and FYYD_REDIRECT_URI to log in")
	}

	authURL := oauth.AuthorizationURL()
	if authURL == "" {
		return fmt.Errorf("OAuth2 client registration is incomplete")
	}

	fmt.Printf("open this URL in a browser and authorize the app:\n\n  %s\n\n", authURL)
	fmt.Fprint(os.Stderr, "Enter the code from the redirect: ")

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return fmt.Errorf("no input")
	}
	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return fmt.Errorf("empty code")
	}

	if err := oauth.ExchangeCode(ctx, code); err != nil {
		return fmt.Errorf("exchanging code: %w", err)
	}

	account, err := client.Account(ctx)
	if err != nil {
		return fmt.Errorf("verifying login: %w", err)
	}

	fmt.Printf("logged in as %s\n", account.Nick)
	return nil
}

func runAccount(ctx context.Context, client *fyyd.Client) error {
	account, err := client.Account(ctx)
	if err != nil {
		return fmt.Errorf("fetching account: %w", err)
	}

	fmt.Printf("%s (#%d)\n", account.Nick, account.ID)
	if account.FullName != "" {
		fmt.Println(account.FullName)
	}

	curations, err := client.Curations(ctx)
	if err != nil {
		return fmt.Errorf("fetching curations: %w", err)
	}
	fmt.Printf("curations (%d):\n", len(curations))
	for _, cur := range curations {
		fmt.Printf("  %8d  %s (%d episodes)\n", cur.ID, cur.Title, cur.EpisodeCount)
	}
	return nil
}
