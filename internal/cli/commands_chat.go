package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/assistant"
	"github.com/noshnavigator/nosh-cli/internal/catalog"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/gateway/nosh"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
	"github.com/noshnavigator/nosh-cli/internal/service/search"
	"github.com/noshnavigator/nosh-cli/internal/session"
)

// apologyText is the fixed fallback when the remote completion fails.
const apologyText = "Sorry, I'm having trouble thinking right now. Please try again in a moment."

// revealInterval paces the interactive reply animation.
const revealInterval = 20 * time.Millisecond

func newChatCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var interactive bool
	var remote bool

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the ordering assistant: search, add to cart, or ask for help.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			router := deps.Assistant
			if router == nil {
				seed := catalog.Seed()
				router = assistant.NewRouter(seed, search.NewRanker(seed))
			}

			if interactive {
				return runInteractiveChat(cmd, deps, router, flags, remote)
			}

			message := strings.TrimSpace(strings.Join(args, " "))
			if message == "" {
				return errors.New(requiredArg("message"))
			}

			sess, err := deps.Sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			reply := processChatTurn(cmd, deps, router, flags, &sess, message, remote)
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
					"reply":    reply.Text,
					"no_match": reply.NoMatch,
				}, nil, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}
			if err := writeTable(cmd, reply.Text, flags.Output); err != nil {
				return err
			}
			return emitChatSignal(cmd, deps, flags, sess, reply.Signal)
		},
	}

	addGlobalFlags(cmd, &flags)
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Start an interactive chat session.")
	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the server's completion proxy when nothing local matches.")
	return cmd
}

// processChatTurn runs one message through the router, falling back to
// the remote completion proxy when asked and nothing local matched.
func processChatTurn(
	cmd *cobra.Command,
	deps Dependencies,
	router Assistant,
	flags globalFlags,
	sess *domain.Session,
	message string,
	remote bool,
) assistant.Reply {
	var location *domain.Location
	if loc, ok := session.FreshLocation(*sess, deps.now()); ok {
		location = &loc
	}

	reply := router.Process(sess, location, message)
	if !reply.NoMatch || !remote || deps.Server == nil {
		return reply
	}

	messages := make([]nosh.ChatMessage, 0, len(sess.History))
	for _, turn := range sess.History {
		messages = append(messages, nosh.ChatMessage{Role: turn.Role, Content: turn.Content})
	}
	token := resolveToken(cmd.Context(), deps, flags, "")
	text, err := deps.Server.Chat(cmd.Context(), token, messages)
	if err != nil || strings.TrimSpace(text) == "" {
		text = apologyText
	}
	sess.History = append(sess.History, domain.ChatMessage{Role: "assistant", Content: text})
	return assistant.Reply{Text: text}
}

func runInteractiveChat(cmd *cobra.Command, deps Dependencies, router Assistant, flags globalFlags, remote bool) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	var revealer assistant.Revealer

	_, _ = fmt.Fprintln(out, "Chat with the assistant. Type 'exit' to leave.")
	for {
		_, _ = fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if lowered := strings.ToLower(message); lowered == "exit" || lowered == "quit" {
			_, _ = fmt.Fprintln(out, "Bye! Your cart is saved.")
			return nil
		}

		sess, err := deps.Sessions.Load(cmd.Context())
		if err != nil {
			return err
		}
		reply := processChatTurn(cmd, deps, router, flags, &sess, message, remote)
		if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
			return err
		}

		token := revealer.Begin()
		_, _ = fmt.Fprint(out, "nosh> ")
		if err := revealer.Reveal(token, out, reply.Text, revealInterval); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
		if err := emitChatSignal(cmd, deps, flags, sess, reply.Signal); err != nil {
			return err
		}
	}
}

// emitChatSignal renders side effects a reply asks for.
func emitChatSignal(cmd *cobra.Command, deps Dependencies, flags globalFlags, sess domain.Session, signal assistant.Signal) error {
	if signal != assistant.SignalShowCart {
		return nil
	}
	return writeTable(cmd, renderCartTable(sess.Cart), flags.Output)
}
