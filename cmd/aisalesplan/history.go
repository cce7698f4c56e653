package main

import (
	"fmt"
	"strings"

	"github.com/DennisFaucher/aisalesplan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := aisalesplan.ResearchFilter{Limit: c.Limit}
	if customer := strings.TrimSpace(c.Customer); customer != "" {
		filter.Customer = &customer
	}

	list, err := deps.Research.FindResearch(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aisalesplan.ErrorMessage(err))
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(deps.Stdout, "No research found. Use 'aisalesplan search' to run one.")
		return nil
	}

	for _, r := range list {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Title())
	}

	return nil
}
