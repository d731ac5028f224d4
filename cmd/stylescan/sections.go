package main

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dgallion1/stylegest/internal/config"
	"github.com/dgallion1/stylegest/internal/paper"
	"github.com/dgallion1/stylegest/internal/parser"
	"github.com/dgallion1/stylegest/internal/pipeline"
	"github.com/dgallion1/stylegest/internal/sections"
)

type sectionRow struct {
	Kind   paper.Kind `json:"kind"`
	Header string     `json:"header"`
	Start  int        `json:"start_offset"`
	End    int        `json:"end_offset"`
	Chars  int        `json:"chars"`
	Text   string     `json:"text,omitempty"`
}

func newSectionsCmd(cfg config.Config) *cobra.Command {
	var (
		asJSON   bool
		withText bool
	)
	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "Print the sections detected in one paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := parser.ExtractFile(args[0], pipeline.ParserOptions(cfg))
			if err != nil {
				return err
			}
			found := sections.NewDetector(sections.DefaultConfig()).Sections(text)

			rows := make([]sectionRow, 0, len(found))
			for _, s := range found {
				row := sectionRow{Kind: s.Kind, Header: s.Header, Start: s.Start, End: s.End, Chars: utf8.RuneCountInString(s.Text)}
				if withText {
					row.Text = s.Text
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "no sections detected")
				return nil
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%-17s %7d-%-7d %6d chars  %q\n", r.Kind, r.Start, r.End, r.Chars, r.Header)
				if withText {
					fmt.Fprintf(out, "%s\n\n", r.Text)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sections as JSON")
	cmd.Flags().BoolVar(&withText, "text", false, "Include section bodies")
	return cmd
}
