package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"inventory/internal/config"
	"inventory/internal/crypto"
	"inventory/internal/http/handlers"
	applog "inventory/internal/log"
	"inventory/internal/repos"
	"inventory/internal/services"
	"inventory/internal/validate"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile, port string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  func(cmd *cobra.Command, args []string) error { return runServer(envFile, port) },
	}
	serve.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	root := &cobra.Command{
		Use:          "inventory",
		Short:        "Book and customer inventory API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "properties file with DB_URL/DB_USER/DB_PASS (default .env, optional)")
	root.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	root.AddCommand(serve, useraddCmd(&envFile))
	return root
}

// setup loads config, points the logger at stdout (and LOG_FILE if set) and opens
// the store. The returned writer is where log lines go.
func setup(envFile string) (config.Config, *sqlx.DB, io.Writer, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, nil, nil, err
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	applog.Init(out, level)
	applog.Info(nil, "config.loaded", map[string]any{
		"port": cfg.Port, "db_driver": cfg.DB.Driver, "password_hash": cfg.PasswordHash,
	})

	db, err := repos.OpenDB(cfg.DB)
	if err != nil {
		return cfg, nil, nil, err
	}
	applog.Info(nil, "db.open", map[string]any{"driver": db.DriverName()})
	return cfg, db, out, nil
}

// newServer wires handlers and routes; access lines go to accessLog.
func newServer(cfg config.Config, db *sqlx.DB, accessLog io.Writer) (*fiber.App, error) {
	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		return nil, err
	}
	app := handlers.NewApp(cfg, accessLog)
	handlers.Routes(app, deps, cfg)
	return app, nil
}

func runServer(envFile, port string) error {
	cfg, db, out, err := setup(envFile)
	if err != nil {
		return err
	}
	defer db.Close()
	if port != "" {
		cfg.Port = port
	}

	app, err := newServer(cfg, db, out)
	if err != nil {
		return err
	}

	// Trap shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		applog.Info(nil, "server.shutdown", map[string]any{"signal": sig.String()})
		_ = app.Shutdown()
	}()

	applog.Info(nil, "server.listen", map[string]any{"addr": ":" + cfg.Port})
	return app.Listen(":" + cfg.Port)
}

func useraddCmd(envFile *string) *cobra.Command {
	var name, email string
	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Register a user, prompting for the password",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, _, err := setup(*envFile)
			if err != nil {
				return err
			}
			defer db.Close()

			hasher, err := crypto.NewHasher(cfg.PasswordHash)
			if err != nil {
				return err
			}
			password, err := readPassword(cmd.OutOrStdout(), "Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			auth := services.NewAuthService(repos.NewUserRepo(db), hasher)
			err = auth.Register(validate.RegisterInput{Name: name, Email: email, Password: password})
			if errors.Is(err, services.ErrEmailTaken) {
				return fmt.Errorf("%s is already registered", email)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// readPassword masks input on a terminal and falls back to a plain line read
// when stdin is piped.
func readPassword(w io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(w) // Add newline after password input
	if err != nil {
		return "", err
	}
	return string(b), nil
}
