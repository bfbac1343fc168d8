package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"selectmenu/internal/config"
	"selectmenu/internal/domain"
	"selectmenu/internal/eventbus"
	"selectmenu/internal/selection"
	"selectmenu/internal/ui"
)

// errAborted is returned when the user closes the menu without confirming
var errAborted = errors.New("selection aborted")

type options struct {
	multi      bool
	single     bool
	dismiss    bool
	preselect  []string
	title      string
	configPath string
	logPath    string
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	return newCommand(&options{}, stdin, stdout)
}

func newCommand(opts *options, stdin io.Reader, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "selectmenu [flags] [items...]",
		Short:         "Pick one or more items from a list in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		Example: strings.TrimSpace(`
  # Pick one of the arguments
  selectmenu red green blue

  # Pick several lines from stdin
  git branch --format='%(refname:short)' | selectmenu --multi

  # Lines may carry a title and a markdown detail separated by tabs
  printf 'a\tAlpha\tFirst *letter*\nb\tBeta\n' | selectmenu -p b
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog := setupLogging(opts.logPath)
			defer closeLog()
			return run(cmd, opts, args, stdin, stdout)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.multi, "multi", "m", false, "allow selecting several items")
	f.BoolVarP(&opts.single, "single", "s", false, "allow selecting a single item (default)")
	f.BoolVar(&opts.dismiss, "dismiss", true, "close after a single-select activation")
	f.StringArrayVarP(&opts.preselect, "preselect", "p", nil, "key of an item to select up front (repeatable)")
	f.StringVarP(&opts.title, "title", "t", "", "menu title")

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "config file")
	pf.StringVar(&opts.logPath, "log", filepath.Join(os.TempDir(), "selectmenu.log"), "log file")

	cmd.MarkFlagsMutuallyExclusive("multi", "single")
	cmd.AddCommand(newInitConfigCmd(opts))

	return cmd
}

// setupLogging sends the standard logger to path. The terminal belongs to
// the menu, so logging is discarded when the file cannot be opened.
func setupLogging(path string) func() {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() {
		log.SetOutput(os.Stderr)
		logFile.Close()
	}
}

func run(cmd *cobra.Command, opts *options, args []string, stdin io.Reader, stdout io.Writer) error {
	bus := eventbus.New()
	defer bus.Close()

	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			log.Printf("Selection changed: %v selected=%t (%d total)", event.Object, event.Selected, len(event.Selection))
		}
	})
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Config loaded from %q (policy %s)", event.Path, event.Policy)
		}
	})

	cfg, err := loadConfig(cmd, opts, bus)
	if err != nil {
		return err
	}
	policy, err := cfg.SelectionPolicy()
	if err != nil {
		return err
	}

	items, err := readItems(args, stdin)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errors.New("no items to select from")
	}

	controller := selection.NewController(policy, selection.WithObserver(selection.Publisher(bus)))
	model := ui.NewModel(items, controller, cfg, bus)
	model.Preselect(cfg.Preselected)

	// stdout carries the result, so the menu draws on stderr
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run menu: %w", err)
	}

	chosen, confirmed := model.Result()
	log.Printf("Menu closed: confirmed=%t keys=%v", confirmed, domain.Keys(chosen))
	if !confirmed {
		return errAborted
	}
	return writeKeys(stdout, chosen)
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command, opts *options, bus eventbus.EventBus) (*config.Config, error) {
	svc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	switch {
	case opts.multi:
		cfg.Policy = selection.Multi.String()
	case opts.single:
		cfg.Policy = selection.Single.String()
	}
	if flags.Changed("dismiss") {
		cfg.DismissOnSelect = opts.dismiss
	}
	if flags.Changed("preselect") {
		cfg.Preselected = opts.preselect
	}
	if flags.Changed("title") {
		cfg.Title = opts.title
	}
}

func readItems(args []string, stdin io.Reader) ([]domain.Item, error) {
	var items []domain.Item
	if len(args) > 0 {
		items = itemsFromArgs(args)
	} else {
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, errors.New("no items given: pass them as arguments or pipe them on stdin")
		}
		var err error
		if items, err = parseItems(stdin); err != nil {
			return nil, err
		}
	}
	if err := uniqueKeys(items); err != nil {
		return nil, err
	}
	return items, nil
}

func writeKeys(w io.Writer, items []domain.Item) error {
	for _, it := range items {
		if _, err := fmt.Fprintln(w, it.Key); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

func newInitConfigCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
				}
			}

			svc := config.NewConfigServiceAt(path)
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
