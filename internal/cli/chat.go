package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true)
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-and-answer session",
	Long: `Start an interactive session against the loaded pipeline dataset.

Each question is answered independently; a failed generation returns an
apology and leaves the session usable. Type "exit" or "quit" to leave,
or "/reload" to discard the cached dataset and query Athena again.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}
	a, err := getAnalyst(ctx)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	slog.Info("chat session started", "session_id", sessionID)

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Printf("Total events loaded: %d\n", ds.Summary.TotalEvents)
	fmt.Println(render(styled, hintStyle, `Ask about your pipelines ("exit" to quit, "/reload" to re-query).`))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(render(styled, promptStyle, "you> "))
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())

		switch question {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/reload":
			loader.Reload()
			if ds, err = loadDataset(ctx); err != nil {
				return err
			}
			fmt.Printf("Reloaded %d events.\n", ds.Summary.TotalEvents)
			continue
		}

		slog.Info("question received", "session_id", sessionID)
		answer := a.Ask(ctx, question, ds)
		fmt.Println(render(styled, answerStyle, answer))
	}
	return scanner.Err()
}

// render applies style only when stdout is a terminal.
func render(styled bool, style lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
