package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/avigneron/dexterm/internal/catalog"
	"github.com/avigneron/dexterm/internal/collection"
	"github.com/avigneron/dexterm/internal/config"
	"github.com/avigneron/dexterm/internal/domain"
	"github.com/avigneron/dexterm/internal/log"
	"github.com/avigneron/dexterm/internal/recordapi"
	"github.com/avigneron/dexterm/internal/session"
	"github.com/avigneron/dexterm/internal/store"
	"github.com/avigneron/dexterm/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var exportPath string
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&exportPath, "export", "", "admin export file path")
	flag.Parse()

	if showVersion {
		fmt.Printf("dexterm %s\n", Version)
		return
	}

	if err := run(exportPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(exportPath string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting dexterm", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	localStore, err := store.NewLocalStore(config.DataPath())
	if err != nil {
		// A broken local store degrades to memory-only operation.
		logger.Warn("local store unavailable, running in memory", "error", err)
		localStore, _ = store.NewLocalStore("")
	}
	defer localStore.Close()

	records := recordapi.NewClient(cfg.Server.URL, cfg.Server.Token, logger)
	source := catalog.NewClient(cfg.Catalog.APIURL, cfg.Catalog.Language, logger)
	catalogSvc := catalog.NewService(localStore, source, logger)
	collectionSvc := collection.NewService(records, localStore, domain.TotalEntries, logger)

	sess := session.New(domain.UserRecord{
		UID:      cfg.Server.UserID,
		Username: cfg.Server.Username,
		Role:     domain.RoleMember,
	}, logger)
	admin := session.NewAdmin(sess, records, logger)

	model := tui.NewModel(catalogSvc, collectionSvc, sess, admin, records, localStore, logger)
	model.ExportPath = exportPath

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to dexterm!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	serverURL, err := promptNonEmpty(reader, "Record service URL (e.g., https://pokedex.example.com): ")
	if err != nil {
		return err
	}
	userID, err := promptNonEmpty(reader, "User ID: ")
	if err != nil {
		return err
	}
	username, err := promptNonEmpty(reader, "Display name: ")
	if err != nil {
		return err
	}

	fmt.Print("Access token (input hidden): ")
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	cfg.Server.URL = serverURL
	cfg.Server.UserID = userID
	cfg.Server.Username = username
	cfg.Server.Token = strings.TrimSpace(string(token))

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run dexterm again to start the application.")
	return nil
}

func promptNonEmpty(reader *bufio.Reader, prompt string) (string, error) {
	for {
		fmt.Print(prompt)
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		input = strings.TrimSpace(input)
		if input != "" {
			return input, nil
		}
		fmt.Println("Value cannot be empty. Please try again.")
	}
}
