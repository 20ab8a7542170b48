package cli

import (
	"fmt"
	"strconv"
	"strings"

	"photo-gallery/internal/gallery"
	"photo-gallery/internal/model"

	"github.com/spf13/cobra"
)

type browseStep struct {
	Key      string `json:"key" yaml:"key"`
	Consumed bool   `json:"consumed" yaml:"consumed"`
	Open     bool   `json:"open" yaml:"open"`
	Selected int    `json:"selected,omitempty" yaml:"selected,omitempty"`
	Index    int    `json:"index" yaml:"index"`
}

type lockState struct {
	Held     bool `json:"held" yaml:"held"`
	Acquired int  `json:"acquired" yaml:"acquired"`
	Released int  `json:"released" yaml:"released"`
}

func newBrowseCmd(app *App) *cobra.Command {
	var category string
	var openID string
	var keys string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Replay lightbox key presses and print the resulting state",
		Long: strings.TrimSpace(`
Drive the gallery controller without a UI: pick a category, open an entry,
then apply a comma-separated list of lightbox keys (esc, left, right; browser
names such as Escape or ArrowRight work too). Unknown keys are recorded as
not consumed. Keys pressed while the lightbox is closed are ignored.
`),
		Example: strings.TrimSpace(`
gallery browse --open 1 --keys "right,right"
gallery browse --category landscape --open 2 --keys "left,esc"
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadCatalog(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			lock := gallery.NewLock(nil)
			ctrl := gallery.NewController(src.Entries, lock)
			defer ctrl.Teardown()

			active := model.NormalizeCategory(category)
			if active == "" {
				active = model.CategoryAll
			}
			ctrl.SetActiveCategory(active)

			if s := strings.TrimSpace(openID); s != "" {
				id, err := strconv.Atoi(s)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("invalid --open id %q", openID))
				}
				if _, ok := gallery.Find(src.Entries, id); !ok {
					return writeErr(cmd, errNotFound("entry", s))
				}
				if !ctrl.OpenID(id) {
					return writeErr(cmd, fmt.Errorf("entry %d is not visible under category %q", id, active))
				}
			}

			steps := []browseStep{}
			for _, name := range strings.Split(keys, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				step := browseStep{
					Key:      name,
					Consumed: gallery.HandleKey(ctrl, gallery.ParseKey(name)),
					Open:     ctrl.IsOpen(),
					Index:    ctrl.CurrentIndex(),
				}
				if e, ok := ctrl.Selected(); ok {
					step.Selected = e.ID
				}
				steps = append(steps, step)
			}

			acquired, released := lock.Counts()
			hints := []string{}
			if ctrl.IsOpen() {
				hints = append(hints, "append esc to --keys to close the lightbox")
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"state": ctrl.Snapshot(),
					"steps": steps,
					"lock": lockState{
						Held:     lock.Held(),
						Acquired: acquired,
						Released: released,
					},
				},
				"_hints": hints,
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", string(model.CategoryAll), "Active category")
	cmd.Flags().StringVar(&openID, "open", "", "Entry id to open in the lightbox")
	cmd.Flags().StringVar(&keys, "keys", "", "Comma-separated lightbox keys (esc,left,right)")
	return cmd
}
