package main

import (
	"fmt"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	res, err := deps.Researcher.Research(deps.Ctx, c.Customer, c.Theme)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aisalesplan.ErrorMessage(err))
		return err
	}

	doc := &aisalesplan.ExportDocument{
		Customer: res.Customer,
		Theme:    res.Theme,
		Markdown: res.Markdown,
	}

	path, err := fs.NewWriter(deps.Exporter, "").WriteDocument(doc, c.Out)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aisalesplan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
