package main

import (
	"fmt"

	"github.com/spf13/cobra"

	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/widget"
)

func loadDocument(cmd *cobra.Command, path string) (*dom.Document, error) {
	in, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	doc, err := dom.Parse(in)
	if err != nil {
		return nil, werrors.New("W006").Wrap(err)
	}
	return doc, nil
}

func queryCmd() *cobra.Command {
	var (
		file  string
		text  bool
		count bool
	)

	cmd := &cobra.Command{
		Use:   "query SELECTOR",
		Short: "Print the elements matching a selector",
		Long: `Parse an HTML document and print every element matching SELECTOR.

Examples:
  widgets query -f index.html 'ul > li.active'
  curl -s https://example.com | widgets query --text h1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := dom.Compile(args[0]); err != nil {
				return err
			}
			doc, err := loadDocument(cmd, file)
			if err != nil {
				return err
			}
			matches := widget.Wrap(doc, doc.DocumentElement()).QueryAll(args[0])

			out := cmd.OutOrStdout()
			if count {
				fmt.Fprintln(out, len(matches))
				return nil
			}
			for _, m := range matches {
				if text {
					fmt.Fprintln(out, m.Text())
				} else {
					fmt.Fprintln(out, dom.OuterHTML(m.Node()))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "HTML file (default stdin)")
	cmd.Flags().BoolVar(&text, "text", false, "Print text content instead of markup")
	cmd.Flags().BoolVarP(&count, "count", "c", false, "Print only the number of matches")
	return cmd
}
