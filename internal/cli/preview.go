package cli

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/richedit/internal/render"
	"github.com/dshills/richedit/internal/richtext"
)

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview FILE",
		Short: "Show a document in the terminal; any key exits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument(args[0])
			if err != nil {
				return err
			}
			screen, err := a.newScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			return preview(cmd.Context(), screen, doc)
		},
	}
}

// preview draws doc until a key is pressed or ctx is done.
func preview(ctx context.Context, screen tcell.Screen, doc *richtext.Text) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	r := render.New()
	draw := func() {
		screen.Clear()
		w, h := screen.Size()
		r.Draw(screen, doc, render.Area{Width: w, Height: h}, richtext.Range{})
		screen.Show()
	}
	draw()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				draw()
			case *tcell.EventKey:
				return nil
			}
		}
	}
}
