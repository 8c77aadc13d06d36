package reporter

import (
	"github.com/olekukonko/tablewriter"
)

// Table renders rows under header.
func (c *Console) Table(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(c.out)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
