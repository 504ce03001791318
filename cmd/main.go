package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"shorts-analyzer/analyzer"
	"shorts-analyzer/shared/config"
	"shorts-analyzer/shared/scheduler"
	"shorts-analyzer/youtube"
)

var sortOptions = []string{"viewCount", "rating", "relevance", "date"}

var categories = []string{
	"trending shorts",
	"gaming shorts",
	"music shorts",
	"comedy shorts",
	"dance shorts",
	"tutorial shorts",
	"challenge shorts",
	"viral shorts",
}

func main() {
	apiKey := flag.String("api_key", "", "YouTube API key (optional if set in env file or environment)")
	configFile := flag.String("config", "", "path to YAML config file")
	scheduled := flag.Bool("schedule", false, "run repeatedly on the configured cron schedule")
	flag.Parse()

	if *configFile != "" {
		os.Setenv("CONFIG_FILE", *configFile)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *apiKey != "" {
		cfg.YouTube.APIKey = *apiKey
		log.Println("Using API key provided via command line")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *scheduled {
		prefs := analyzer.Preferences{
			Category:   cfg.Defaults.Category,
			SortMethod: cfg.Defaults.SortMethod,
			MaxResults: int64(cfg.Defaults.MaxResults),
			WindowDays: cfg.Defaults.WindowDays,
		}
		agent := analyzer.New(cfg, prefs, true)
		s := scheduler.New(cfg.Schedule, cfg.Monitoring.HealthPort, agent)
		if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Scheduler failed: %v", err)
		}
		return
	}

	prefs, err := promptPreferences(os.Stdin)
	if err != nil {
		log.Fatalf("Failed to read preferences: %v", err)
	}

	agent := analyzer.New(cfg, prefs, false)
	if err := agent.Initialize(); err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	summary, err := agent.RunOnce(ctx)
	if err != nil {
		if errors.Is(err, youtube.ErrQuotaExceeded) {
			log.Fatalf("Daily API quota exceeded before any data could be fetched; try again after the quota resets")
		}
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("Analysis completed successfully: %s", summary)
}

// promptPreferences walks the user through the search settings, looping
// on each question until the answer is valid.
func promptPreferences(in io.Reader) (analyzer.Preferences, error) {
	r := bufio.NewReader(in)
	var prefs analyzer.Preferences

	fmt.Println("\n=== YouTube Shorts Analyzer Settings ===")

	fmt.Println("\nAvailable sorting methods:")
	for i, s := range sortOptions {
		fmt.Printf("%d. %s\n", i+1, s)
	}
	choice, err := promptChoice(r, fmt.Sprintf("\nChoose sorting method (1-%d): ", len(sortOptions)), len(sortOptions))
	if err != nil {
		return prefs, err
	}
	prefs.SortMethod = sortOptions[choice-1]

	fmt.Println("\nAvailable categories:")
	for i, c := range categories {
		fmt.Printf("%d. %s\n", i+1, c)
	}
	choice, err = promptChoice(r, fmt.Sprintf("\nChoose category (1-%d): ", len(categories)), len(categories))
	if err != nil {
		return prefs, err
	}
	prefs.Category = categories[choice-1]

	count, err := promptChoice(r, "\nHow many videos to analyze (1-50)? ", 50)
	if err != nil {
		return prefs, err
	}
	prefs.MaxResults = int64(count)

	fmt.Println("\nEnter the date range to search (format: YYYY-MM-DD)")
	prefs.Start, prefs.End, err = promptDateRange(r)
	if err != nil {
		return prefs, err
	}

	return prefs, nil
}

// promptChoice reads a number in [1, max], reprompting on bad input.
func promptChoice(r *bufio.Reader, prompt string, max int) (int, error) {
	for {
		fmt.Print(prompt)
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil || n < 1 || n > max {
			fmt.Printf("Please enter a number between 1 and %d.\n", max)
			continue
		}
		return n, nil
	}
}

func promptDateRange(r *bufio.Reader) (time.Time, time.Time, error) {
	for {
		start, err := promptDate(r, "Start date: ")
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := promptDate(r, "End date: ")
		if err != nil {
			return time.Time{}, time.Time{}, err
		}

		if start.After(end) {
			fmt.Println("Start date must be before end date.")
			continue
		}
		if end.After(time.Now()) {
			fmt.Println("End date cannot be in the future.")
			continue
		}
		return start, end, nil
	}
}

func promptDate(r *bufio.Reader, prompt string) (time.Time, error) {
	for {
		fmt.Print(prompt)
		line, err := r.ReadString('\n')
		if err != nil {
			return time.Time{}, err
		}
		d, parseErr := time.ParseInLocation("2006-01-02", strings.TrimSpace(line), time.UTC)
		if parseErr != nil {
			fmt.Println("Invalid date format. Please use YYYY-MM-DD (e.g., 2026-03-20)")
			continue
		}
		return d, nil
	}
}
