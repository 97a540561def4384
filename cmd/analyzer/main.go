package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/scheduler"
)

var version = "1.0.0"

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

var verbose bool

func debugf(format string, args ...any) {
	if verbose {
		log.Printf("[DEBUG] "+format, args...)
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "stock-analyzer %s\n", version)
		return exitOK
	}
	verbose = opts.verbose

	if err := config.LoadEnvFile(opts.envFile); err != nil {
		log.Printf("[WARN] %v", err)
	}
	cfgPath := opts.resolveConfigPath()
	debugf("config file: %s", cfgPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("[ERROR] load config: %v", err)
		return exitUsage
	}
	if err := opts.apply(cfg); err != nil {
		log.Printf("[ERROR] %v", err)
		return exitUsage
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[ERROR] config validation: %v", err)
		return exitUsage
	}

	a, err := newApp(cfg, stdout)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		if calculator.IsValidationError(err) {
			return exitUsage
		}
		return exitFailed
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if opts.watch {
		return watch(ctx, cfg, a)
	}

	log.Printf("[INFO] analyzing %d symbols over %d days", len(cfg.Analysis.Symbols), cfg.Analysis.PeriodDays)
	analyses, err := a.run(ctx, "")
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return exitFailed
	}
	for _, an := range analyses {
		if an.OK() {
			log.Println("[INFO] analysis completed successfully")
			return exitOK
		}
	}
	log.Println("[ERROR] no symbol could be analyzed")
	return exitFailed
}

func watch(ctx context.Context, cfg *config.Config, a *app) int {
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				log.Printf("[ERROR] metrics server: %v", err)
			}
		}()
		log.Printf("[INFO] metrics on %s/metrics", cfg.Metrics.Addr)
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	sched := scheduler.NewScheduler(ctx, a.run, tn)
	if err := sched.Register(cfg.Watch.Cron); err != nil {
		log.Printf("[ERROR] %v", err)
		return exitUsage
	}
	sched.Start()
	defer sched.Stop()

	if tn.Enabled() {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	go sched.RunNow()
	log.Printf("[INFO] watching %v on %q. Press Ctrl+C to stop.", cfg.Analysis.Symbols, cfg.Watch.Cron)

	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")
	return exitOK
}
