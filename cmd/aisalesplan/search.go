package main

import (
	"encoding/json"
	"fmt"

	"github.com/DennisFaucher/aisalesplan"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	res, err := deps.Researcher.Research(deps.Ctx, c.Customer, c.Theme)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aisalesplan.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintln(deps.Stdout, res.Markdown)
	if len(res.Citations) > 0 {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Sources:")
		for i, u := range res.Citations {
			fmt.Fprintf(deps.Stdout, "[%d] %s\n", i+1, u)
		}
	}
	return nil
}
