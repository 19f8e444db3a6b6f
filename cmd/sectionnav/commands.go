package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tinytelemetry/sectionnav/internal/markup"
	"github.com/tinytelemetry/sectionnav/internal/tui"
)

var errNoDocument = errors.New("no document given: pass a path or set \"document\" in the config")

// cli carries state shared by all subcommands once flags are parsed.
type cli struct {
	configPath string
	verbose    bool
	cfg        cliConfig
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "sectionnav [document]",
		Short: "Browse the sections of a single-page document",
		Long: `sectionnav opens an HTML or YAML document and shows one section at a time.

Navigation links (class "nav-link", attribute "data-target") are listed in a
sidebar; sections (class "section", attribute "id") are shown in the main pane.
Select a link with enter or space, or click it.

Run without a subcommand to start the browser.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLIConfig(c.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if c.verbose {
				cfg.Verbose = true
			}
			c.cfg = cfg
			return nil
		},
		RunE: c.runBrowse,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf(`sectionnav - Section Browser
  Version:    %s
  Commit:     %s
  Built:      %s
  Go version: %s
`, version, commit, buildTime, goVersion))

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default is $HOME/.config/sectionnav/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	browseCmd := &cobra.Command{
		Use:   "browse [document]",
		Short: "Open the document in the terminal browser",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runBrowse,
	}

	listCmd := &cobra.Command{
		Use:   "list [document]",
		Short: "List navigation links and sections",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runList,
	}

	var activate, out string
	renderCmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Write the document back out with a section activated",
		Long: `Loads the document, activates the section named by --activate exactly as a
click on its link would, and writes the result in the document's own format.
An id that matches no section deactivates every section and link.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, activate, cmd.Flags().Changed("activate"), out)
		},
	}
	renderCmd.Flags().StringVar(&activate, "activate", "", "section id to activate")
	renderCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(browseCmd, listCmd, renderCmd)
	return rootCmd
}

func (c *cli) documentPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if c.cfg.Document != "" {
		return c.cfg.Document, nil
	}
	return "", errNoDocument
}

func (c *cli) loadDocument(args []string, logger *zap.Logger) (*markup.Document, error) {
	path, err := c.documentPath(args)
	if err != nil {
		return nil, err
	}
	doc, err := markup.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("document loaded",
		zap.String("path", path),
		zap.Stringer("format", doc.Format),
		zap.Int("controls", len(doc.Controls)),
		zap.Int("sections", len(doc.Sections)))
	return doc, nil
}

func (c *cli) runBrowse(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(c.cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := c.loadDocument(args, logger)
	if err != nil {
		return err
	}

	page := tui.NewNavPage(doc, tui.Options{
		SidebarWidth:       c.cfg.SidebarWidth,
		ReverseScrollWheel: c.cfg.ReverseScrollWheel,
		MarkdownStyle:      c.cfg.MarkdownStyle,
		Logger:             logger,
	})
	app := tui.NewApp(page, tui.NewHelpPage())

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if c.cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func (c *cli) runList(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(c.cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := c.loadDocument(args, logger)
	if err != nil {
		return err
	}
	return writeListing(cmd.OutOrStdout(), doc)
}

func writeListing(w io.Writer, doc *markup.Document) error {
	marker := func(active bool) string {
		if active {
			return "*"
		}
		return " "
	}

	if doc.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", doc.Title); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "Links:")
	for _, ctl := range doc.Controls {
		target := ctl.Target
		if target == "" {
			target = "(none)"
		}
		fmt.Fprintf(w, " %s %-20s -> %s\n", marker(ctl.Active), ctl.Label, target)
	}
	fmt.Fprintln(w, "Sections:")
	for _, sec := range doc.Sections {
		fmt.Fprintf(w, " %s %-20s %s\n", marker(sec.Active), sec.ID, sec.Title)
	}
	return nil
}

func (c *cli) runRender(cmd *cobra.Command, args []string, activate string, changed bool, out string) error {
	logger, err := newLogger(c.cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := c.loadDocument(args, logger)
	if err != nil {
		return err
	}

	if changed {
		sw := doc.Switcher()
		if !sw.HasSection(activate) {
			logger.Warn("activated id matches no section", zap.String("id", activate))
		}
		sw.Activate(activate)
		doc.Apply(sw)
	}

	if out == "" {
		if err := doc.Render(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("rendering document: %w", err)
		}
		return nil
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := doc.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("rendering document: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
