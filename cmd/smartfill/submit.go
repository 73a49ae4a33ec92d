package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"smartfill/internal/shell"
	"smartfill/internal/stager"
)

func newSubmitCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "submit [files...]",
		Short: "Upload documents and start the processing pipeline",
		Long: "Uploads the given PDF/TXT files (and optional free text) under a new\n" +
			"session, starts a pipeline execution and watches it until it finishes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(text) == "" && len(args) == 0 {
				return errors.New("nothing to submit: pass files or --text")
			}

			files, err := readFiles(args)
			if err != nil {
				return err
			}
			in := shell.Input{Text: text, Files: files}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if noTUI || !term.IsTerminal(int(os.Stdout.Fd())) {
				return shell.RunPlain(cmd.Context(), app.deps, in, cmd.OutOrStdout())
			}
			return shell.Run(cmd.Context(), app.deps, in)
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "free text to process alongside any files")
	return cmd
}

// readFiles loads the submission files into memory. A missing file fails the
// whole command before anything is uploaded; item-scoped failures only start
// once staging does.
func readFiles(paths []string) ([]stager.File, error) {
	var files []stager.File
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, stager.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}
