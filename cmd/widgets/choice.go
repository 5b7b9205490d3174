package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/widget"
)

func choiceCmd() *cobra.Command {
	var (
		file  string
		match string
		first bool
	)

	cmd := &cobra.Command{
		Use:   "choice SELECTOR CLASS",
		Short: "Relabel the elements matching a selector",
		Long: `Apply a choice to a document and print the result.

Every element matching SELECTOR gets CLASS when it matches --match and
loses it otherwise. A CLASS starting with '!' inverts the rule. The number
of chosen elements is printed to stderr.

Examples:
  widgets choice -f menu.html 'nav a' active --match '[href="/docs"]'
  widgets choice 'li' '!done' --match '.open' < list.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd, file)
			if err != nil {
				return err
			}

			var m widget.Matcher
			switch {
			case match == "":
			case first:
				m = widget.MatchSelector(match)
			default:
				if _, err := dom.Compile(match); err != nil {
					return err
				}
				m = widget.MatchFunc(func(n *html.Node) bool { return dom.Matches(n, match) })
			}

			root := widget.Wrap(doc, doc.DocumentElement())
			n := root.Choice(args[0], args[1], m)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d chosen\n", n)
			return doc.Render(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "HTML file (default stdin)")
	cmd.Flags().StringVarP(&match, "match", "m", "", "Selector chosen elements match")
	cmd.Flags().BoolVar(&first, "first", false, "Choose only the first element matching --match")
	return cmd
}
