package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"presentty/internal/theme"
	"presentty/internal/tui"
)

var (
	themeName  string
	present    bool
	listThemes bool
)

var rootCmd = &cobra.Command{
	Use:           "presentty <presentation.md>",
	Short:         "A terminal slideshow tool for markdown presentations",
	Long:          "Presentty renders a markdown file as terminal slides:\nnavigate with vim-style keys, reveal content step by step, run code\nblocks in place and live-reload while editing.",
	Args:          cobra.MaximumNArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&themeName, "theme", "t", "", "theme used unless the presentation selects its own")
	rootCmd.Flags().BoolVarP(&present, "present", "p", false, "presentation mode: no live reload on file changes")
	rootCmd.Flags().BoolVar(&listThemes, "list-themes", false, "list the available themes and exit")
}

func run(cmd *cobra.Command, args []string) error {
	if listThemes {
		for _, name := range theme.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}
	if len(args) != 1 {
		return errors.New("expected a presentation file")
	}

	name := themeName
	if name == "" {
		name = os.Getenv("PRESENTTY_THEME")
	}
	defaultTheme := theme.Default()
	if name != "" {
		loaded, ok := theme.FromName(name)
		if !ok {
			return fmt.Errorf("theme %q does not exist", name)
		}
		defaultTheme = loaded
	}

	mode := tui.ModeDevelopment
	if present {
		mode = tui.ModePresentation
	}
	program := tea.NewProgram(tui.NewModel(args[0], defaultTheme, mode), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if model, ok := final.(tui.Model); ok {
		return model.Err()
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
