package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the most common settings and returns the resulting Config.
// Prompts read from stdin and write to out.
func RunWizard(out io.Writer) (*Config, error) {
	cfg := DefaultConfig()
	fmt.Fprintln(out, "Let's configure your gallery.")
	fmt.Fprintln(out)

	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Site.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Site.Title = strings.TrimSpace(title)

	catalogPrompt := promptui.Prompt{
		Label:   "Catalog file (blank for the built-in catalog)",
		Default: "",
	}
	catalog, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	cfg.Catalog = strings.TrimSpace(catalog)

	themePrompt := promptui.Select{
		Label: "Terminal theme",
		Items: []string{"auto", "light", "dark"},
	}
	_, theme, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.TUI.Theme = theme

	glyphPrompt := promptui.Select{
		Label: "Glyphs",
		Items: []string{"unicode", "ascii"},
	}
	_, glyphs, err := glyphPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("glyph selection: %w", err)
	}
	cfg.TUI.Glyphs = glyphs

	addrPrompt := promptui.Prompt{
		Label:   "Web listen address",
		Default: cfg.Web.Addr,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("address is required")
			}
			return nil
		},
	}
	addr, err := addrPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("web address: %w", err)
	}
	cfg.Web.Addr = strings.TrimSpace(addr)

	cfg.normalize()
	return cfg, nil
}
