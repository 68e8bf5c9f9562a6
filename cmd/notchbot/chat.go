package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"notch-chatbot/internal/agent"
	"notch-chatbot/internal/common/database"
	"notch-chatbot/internal/common/metrics"
	"notch-chatbot/internal/session"
)

var sessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts an interactive conversation. History is kept in the configured
session store; pass --session to resume a conversation kept in Redis.
Type "exit", "quit" or "bye" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.Agent.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY not configured")
		}
		agentCfg := agent.FromAppConfig(a.cfg.Agent)
		if err := agentCfg.Validate(); err != nil {
			return fmt.Errorf("agent config: %w", err)
		}
		bot := agent.New(agent.NewClient(a.cfg.Agent.APIKey, a.cfg.Agent.BaseURL), a.registry, agentCfg, a.log)

		store, err := a.sessionStore(ctx)
		if err != nil {
			return err
		}

		id := sessionID
		if id == "" {
			if id, err = store.Create(ctx); err != nil {
				return err
			}
		}
		metrics.ActiveSessions.Inc()
		defer metrics.ActiveSessions.Dec()

		stats := a.store.Stats()
		fmt.Fprintf(os.Stderr, "Loaded %d services, %d case studies, and %d use cases.\n\n", stats.Services, stats.CaseStudies, stats.UseCases)
		return runChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), bot, store, id)
	},
}

func init() {
	chatCmd.Flags().StringVar(&sessionID, "session", "", "resume an existing session id")
	rootCmd.AddCommand(chatCmd)
}

func (a *app) sessionStore(ctx context.Context) (session.Store, error) {
	if a.cfg.Session.Backend != "redis" {
		return session.NewMemoryStore(a.cfg.Session.SessionTTL()), nil
	}
	rdb, err := database.NewRedis(ctx, a.cfg.Database.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, rdb.Close)
	return session.NewRedisStore(rdb.Client, a.cfg.Session.SessionTTL()), nil
}

// replier is the part of *agent.Agent the chat loop needs.
type replier interface {
	Reply(ctx context.Context, history []session.Message, userText string) (*agent.Turn, error)
}

func isExit(s string) bool {
	switch strings.ToLower(s) {
	case "exit", "quit", "bye":
		return true
	}
	return false
}

// runChat reads lines from in until EOF, an exit word or ctx is done. A
// failed turn is reported and the loop continues.
func runChat(ctx context.Context, in io.Reader, out io.Writer, bot replier, store session.Store, id string) error {
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Welcome to Notch Chatbot!")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "\nI'm here to help you learn about Notch's software development services.")
	fmt.Fprintln(out, "Ask me about our capabilities, case studies, or how we can help you.")
	fmt.Fprintf(out, "\nType \"exit\" or press Ctrl+C to quit.\n\n")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if isExit(text) {
			fmt.Fprintln(out, "\nThank you for chatting! Visit www.wearenotch.com for more information.")
			return nil
		}

		history, err := store.History(ctx, id)
		if err != nil {
			fmt.Fprintf(out, "\nError: %v\nLet's try again.\n\n", err)
			continue
		}
		turn, err := bot.Reply(ctx, history, text)
		if err != nil {
			fmt.Fprintf(out, "\nError: %v\nLet's try again.\n\n", err)
			continue
		}
		fmt.Fprintf(out, "Notch: %s\n\n", turn.Reply)

		if err := store.Append(ctx, id, turn.Messages...); err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
		}
	}
}
