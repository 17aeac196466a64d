package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/dirnum/internal/cli"
	"github.com/theirongolddev/dirnum/internal/config"
	"github.com/theirongolddev/dirnum/internal/numbering"
	"github.com/theirongolddev/dirnum/internal/rootdir"
	"github.com/theirongolddev/dirnum/internal/store"
)

// Session is one run of the tool: resolve the root, read its counter, create
// directories interactively, then write the counter back once.
type Session struct {
	Config      config.Config
	CreateTable bool
	In          io.Reader
	Out         io.Writer
	Err         io.Writer
	Log         *slog.Logger

	// Prompter overrides the prompter chosen from Config.Appearance.Prompt.
	Prompter numbering.Prompter
}

// Run executes the session. Resolver and storage failures before the loop
// abort without prompting; a failed final write is returned after the
// directories for this session already exist.
func (s *Session) Run(ctx context.Context) error {
	log := s.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	root, err := rootdir.Resolve(s.Config.General.Root)
	if err != nil {
		return err
	}
	log.Debug("resolved root", "path", root.Path, "name", root.Name, "initial", root.Initial, "created", root.Created)

	fmt.Fprintln(s.Out, cli.RenderTarget(root.Path, root.Created))
	fmt.Fprintln(s.Out)

	st, err := store.Open(ctx, s.Config.Database.URL, s.Config.Database.Table, store.WithLogger(log))
	if err != nil {
		return err
	}
	defer st.Close()

	if s.CreateTable {
		if err := st.CreateTable(ctx); err != nil {
			return err
		}
	}

	if err := st.Ensure(ctx, root.Name, root.Initial); err != nil {
		return err
	}
	rec, err := st.Fetch(ctx, root.Name)
	if err != nil {
		return err
	}

	loop := &numbering.Loop{
		Root:   root.Path,
		Prompt: s.prompter(),
		Out:    s.Out,
		Err:    s.Err,
		Log:    log,
	}
	res, loopErr := loop.Run(ctx, rec.CurrentNumber)

	// Written even when ctx was canceled mid-loop.
	if err := st.Persist(context.WithoutCancel(ctx), root.Name, res.Counter); err != nil {
		return fmt.Errorf("saving counter %d (%d directories already created): %w", res.Counter, len(res.Created), err)
	}

	fmt.Fprintln(s.Out, cli.RenderSaved(root.Name, res.Counter, len(res.Created)))
	return loopErr
}

func (s *Session) prompter() numbering.Prompter {
	if s.Prompter != nil {
		return s.Prompter
	}
	if s.Config.Appearance.Prompt == config.PromptForm {
		return &numbering.FormPrompter{Accessible: os.Getenv("ACCESSIBLE") != ""}
	}
	return numbering.NewLinePrompter(s.In, s.Out)
}
