package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ecosort/app/client/assist"
	"ecosort/app/config"
	"ecosort/app/service/conversation"
	"ecosort/app/service/store"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

type Service struct {
	cfg      *config.Config
	storeSvc *store.Service
	convoSvc *conversation.Service

	in  io.Reader
	out io.Writer

	theme   store.Theme
	palette palette
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	storeSvc := do.MustInvoke[*store.Service](di)
	assistClient := do.MustInvoke[*assist.Client](di)

	convoSvc := conversation.NewService(assistClient, storeSvc, cfg.Client.HistoryTurnCap)

	return NewService(cfg, storeSvc, convoSvc, os.Stdin, os.Stdout), nil
}

func NewService(
	cfg *config.Config,
	storeSvc *store.Service,
	convoSvc *conversation.Service,
	in io.Reader,
	out io.Writer,
) *Service {
	s := &Service{
		cfg:      cfg,
		storeSvc: storeSvc,
		convoSvc: convoSvc,
		in:       in,
		out:      out,
	}

	s.setTheme(storeSvc.LoadTheme())

	return s
}

// Run reads lines until the input closes or the user quits. While
// collecting, a plain line names the trailing blank slot; while
// chatting, it becomes a follow-up. Submissions block the loop, which
// is what keeps a single request in flight.
func (s *Service) Run(ctx context.Context) error {
	s.printWelcome()

	scanner := bufio.NewScanner(s.in)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		s.printPrompt()

		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if s.handleLine(ctx, line) {
			return nil
		}
	}
}

func (s *Service) handleLine(ctx context.Context, line string) (quit bool) {
	if strings.HasPrefix(line, "/") {
		return s.handleCommand(ctx, line)
	}

	if s.convoSvc.Mode() == conversation.ModeCollectingItems {
		s.nameItem(line)
		return false
	}

	s.followUp(ctx, line)

	return false
}

func (s *Service) handleCommand(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	command := fields[0]
	args := fields[1:]

	switch command {
	case "/quit", "/exit":
		return true
	case "/help":
		s.printHelp()
	case "/items":
		s.printItems()
	case "/del":
		s.deleteItem(args)
	case "/notes":
		s.convoSvc.SetNotes(strings.TrimSpace(strings.TrimPrefix(line, "/notes")))
		s.printInfo("Notes updated.")
	case "/go":
		s.submit(ctx, args)
	case "/new":
		s.convoSvc.Reset()
		s.printInfo("Started a new conversation. Add your items.")
	case "/history":
		s.printHistory()
	case "/open":
		s.openEntry(args)
	case "/theme":
		s.handleTheme(args)
	default:
		s.printWarn("Unknown command " + command + ", /help lists available ones.")
	}

	return false
}

func (s *Service) nameItem(name string) {
	items := s.convoSvc.Items()
	last := items[len(items)-1]

	if err := s.convoSvc.EditItem(last.ID, name); err != nil {
		s.printWarn("Could not add the item.")
		return
	}

	s.printInfo(fmt.Sprintf("Added %q. /go when the list is complete.", name))
}

func (s *Service) deleteItem(args []string) {
	if len(args) == 0 {
		s.printWarn("Usage: /del <number>")
		return
	}

	items := s.convoSvc.Items()

	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 || index > len(items) {
		s.printWarn("No slot with that number, /items shows the list.")
		return
	}

	if err := s.convoSvc.DeleteItem(items[index-1].ID); err != nil {
		s.printWarn("Could not delete the slot.")
		return
	}

	s.printItems()
}

func (s *Service) submit(ctx context.Context, args []string) {
	variant := conversation.Variant(s.cfg.Client.DefaultVariant)

	if len(args) > 0 {
		switch args[0] {
		case string(conversation.VariantRecycle):
			variant = conversation.VariantRecycle
		case string(conversation.VariantUpcycle):
			variant = conversation.VariantUpcycle
		default:
			s.printWarn("Unknown variant, use /go or /go upcycle.")
			return
		}
	}

	s.printInfo("Asking for suggestions...")

	err := s.convoSvc.Submit(ctx, variant)
	switch {
	case errors.Is(err, conversation.ErrNoItems):
		s.printWarn("Name at least one item first.")
	case errors.Is(err, conversation.ErrAlreadyChatting):
		s.printWarn("Already chatting, /new starts over.")
	case err != nil:
		s.printError(s.convoSvc.LastError())
	default:
		s.printLastResponse()
		s.printInfo("Ask follow-up questions, or /new to start over.")
	}
}

func (s *Service) followUp(ctx context.Context, text string) {
	s.printInfo("Thinking...")

	err := s.convoSvc.FollowUp(ctx, text)
	switch {
	case errors.Is(err, conversation.ErrEmptyFollowUp):
		// nothing to send
	case err != nil:
		s.printError(s.convoSvc.LastError())
	default:
		s.printLastResponse()
	}
}

func (s *Service) openEntry(args []string) {
	if len(args) == 0 {
		s.printWarn("Usage: /open <number>")
		return
	}

	entries := s.convoSvc.History()

	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 || index > len(entries) {
		s.printWarn("No history entry with that number, /history shows them.")
		return
	}

	if err := s.convoSvc.Reopen(entries[index-1].ID); err != nil {
		s.printWarn("Could not open the entry.")
		return
	}

	s.printTranscript()
}

func (s *Service) handleTheme(args []string) {
	if len(args) == 0 {
		s.printInfo("Current theme: " + string(s.theme) + ". Use /theme light or /theme dark.")
		return
	}

	theme := store.Theme(args[0])
	if theme != store.ThemeLight && theme != store.ThemeDark {
		s.printWarn("Unknown theme, use light or dark.")
		return
	}

	s.setTheme(theme)
	s.storeSvc.SaveTheme(theme)
	s.printInfo("Theme switched to " + string(theme) + ".")
}

func (s *Service) setTheme(theme store.Theme) {
	s.theme = theme
	s.palette = paletteFor(theme)
}

func (s *Service) printWelcome() {
	s.palette.response.Fprintln(s.out, "ecosort: recycling and upcycling suggestions")
	s.printInfo("Type the items you want to get rid of, one per line. /help lists commands.")
}

func (s *Service) printPrompt() {
	marker := "items> "
	if s.convoSvc.Mode() == conversation.ModeChatting {
		marker = "chat> "
	}

	s.palette.prompt.Fprint(s.out, marker)
}

func (s *Service) printItems() {
	items := s.convoSvc.Items()

	for i, item := range items {
		name := item.Name
		if strings.TrimSpace(name) == "" {
			name = "(empty)"
		}

		fmt.Fprintf(s.out, "%2d. %s\n", i+1, name)
	}

	if notes := s.convoSvc.Notes(); notes != "" {
		s.printInfo("Notes: " + notes)
	}
}

func (s *Service) printHistory() {
	entries := s.convoSvc.History()
	if len(entries) == 0 {
		s.printInfo("No saved conversations yet.")
		return
	}

	for i, entry := range entries {
		names := pie.Map(entry.Items, func(item conversation.Item) string {
			return item.Name
		})

		fmt.Fprintf(s.out, "%2d. [%s] %s\n", i+1, entry.Timestamp, truncate(strings.Join(names, ", "), 60))
	}
}

func (s *Service) printTranscript() {
	for _, msg := range s.convoSvc.Messages() {
		if msg.Role == conversation.RoleAssistant {
			s.palette.response.Fprintln(s.out, msg.Content)
		} else {
			s.palette.prompt.Fprintln(s.out, "you: "+msg.Content)
		}
	}
}

func (s *Service) printLastResponse() {
	messages := s.convoSvc.Messages()

	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == conversation.RoleAssistant {
			s.palette.response.Fprintln(s.out, messages[i].Content)
			return
		}
	}
}

func (s *Service) printHelp() {
	fmt.Fprintln(s.out, `Commands:
  /items              list item slots
  /del <n>            delete slot n
  /notes <text>       set extra notes for the suggestion
  /go [upcycle]       ask for suggestions (default: recycle)
  /new                start a new conversation
  /history            list saved conversations, newest first
  /open <n>           reopen a saved conversation
  /theme [light|dark] show or switch the color theme
  /quit               exit`)
}

func (s *Service) printInfo(text string) {
	s.palette.info.Fprintln(s.out, text)
}

func (s *Service) printWarn(text string) {
	s.palette.warn.Fprintln(s.out, text)
}

func (s *Service) printError(text string) {
	s.palette.fail.Fprintln(s.out, text)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	return string(runes[:limit-3]) + "..."
}
