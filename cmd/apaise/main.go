package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/apaise/internal/chat"
	"github.com/alexanderramin/apaise/internal/gateway"
	"github.com/alexanderramin/apaise/internal/httpapi"
	"github.com/alexanderramin/apaise/internal/session"
	"github.com/alexanderramin/apaise/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "apaise",
		Short: "Guided self-help chat service with a conversational safety gate",
	}
	root.AddCommand(newServeCmd(), newChatCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		addr       string
		storeType  string
		redisAddr  string
		sessionTTL time.Duration
		sessionCap int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP turn service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, storeType, redisAddr, sessionTTL, sessionCap)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8484", "listen address")
	cmd.Flags().StringVar(&storeType, "session-store", "memory", "session store driver (memory|redis)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for the redis driver")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 30*time.Minute, "idle expiry for session state")
	cmd.Flags().IntVar(&sessionCap, "session-capacity", 10000, "max sessions held by the memory driver")

	return cmd
}

func runServe(addr, storeType, redisAddr string, sessionTTL time.Duration, sessionCap int) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	// The gateway credential is checked here, before any turn is served.
	backend, err := gateway.NewOpenAIGateway(gateway.LoadConfig(), gateway.NewZapObserver(logger))
	if err != nil {
		return fmt.Errorf("configuring dialogue gateway: %w", err)
	}

	opts := []session.StoreOption{
		session.WithTTL(sessionTTL),
		session.WithCapacity(sessionCap),
	}
	if session.StoreType(storeType) == session.StoreTypeRedis {
		opts = append(opts, session.WithRedisClient(redis.NewClient(&redis.Options{Addr: redisAddr})))
	}
	store, err := session.NewStore(session.StoreType(storeType), opts...)
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}
	defer store.Close()

	svc := chat.NewService(store, backend, logger)
	srv := httpapi.NewServer(svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, addr)
}

func newChatCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open a terminal chat against a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("chat requires an interactive terminal")
			}
			model := tui.NewModel(server, uuid.NewString())
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8484", "apaise server URL")

	return cmd
}
