package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderCostRows writes cost rows in the chosen format. Table output ends
// with a Total line summing every row; CSV/JSON carry the raw values so a
// re-parse reproduces the same (key, cost, currency) tuples.
func RenderCostRows(w io.Writer, rows []model.CostRow, format model.Format, groupLabel string) error {
	switch format {
	case model.FormatJSON:
		return renderJSON(w, rows)

	case model.FormatCSV:
		records := make([][]string, 0, len(rows))
		for _, row := range rows {
			records = append(records, []string{
				row.Key,
				strconv.FormatFloat(row.Cost, 'f', -1, 64),
				row.Currency,
			})
		}
		return renderCSV(w, []string{groupLabel, "cost", "currency"}, records)

	default:
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{groupLabel, "Cost", "Currency"})
		tw.SetStyle(table.StyleRounded)
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
		})

		var total float64
		currency := ""
		for _, row := range rows {
			tw.AppendRow(table.Row{row.Key, fmt.Sprintf("%.2f", row.Cost), row.Currency})
			total += row.Cost
			if currency == "" {
				currency = row.Currency
			}
		}
		tw.Render()

		fmt.Fprintf(w, "\nTotal: %.2f %s\n", total, currency)
		return nil
	}
}

// ParseCostRowsCSV reads back what RenderCostRows wrote in CSV format
func ParseCostRowsCSV(r io.Reader) ([]model.CostRow, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV input")
	}

	rows := make([]model.CostRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 3 {
			return nil, fmt.Errorf("malformed CSV record: %v", record)
		}
		cost, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed cost %q: %w", record[1], err)
		}
		rows = append(rows, model.CostRow{Key: record[0], Cost: cost, Currency: record[2]})
	}
	return rows, nil
}

// RenderAccounts writes billing accounts in the chosen format
func RenderAccounts(w io.Writer, accounts []model.BillingAccount, format model.Format) error {
	switch format {
	case model.FormatJSON:
		return renderJSON(w, accounts)

	case model.FormatCSV:
		records := make([][]string, 0, len(accounts))
		for _, account := range accounts {
			records = append(records, []string{
				account.ID,
				account.DisplayName,
				strconv.FormatBool(account.Open),
				account.Currency,
			})
		}
		return renderCSV(w, []string{"id", "display_name", "open", "currency"}, records)

	default:
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"ID", "Display Name", "Open", "Currency"})
		tw.SetStyle(table.StyleRounded)
		for _, account := range accounts {
			open := text.FgGreen.Sprint("yes")
			if !account.Open {
				open = text.FgRed.Sprint("no")
			}
			tw.AppendRow(table.Row{account.ID, account.DisplayName, open, account.Currency})
		}
		tw.Render()
		return nil
	}
}

// RenderProjects writes project billing associations in the chosen format
func RenderProjects(w io.Writer, projects []model.ProjectBillingInfo, format model.Format) error {
	switch format {
	case model.FormatJSON:
		return renderJSON(w, projects)

	case model.FormatCSV:
		records := make([][]string, 0, len(projects))
		for _, project := range projects {
			records = append(records, []string{
				project.ProjectID,
				project.BillingAccount,
				strconv.FormatBool(project.BillingEnabled),
			})
		}
		return renderCSV(w, []string{"project_id", "billing_account", "billing_enabled"}, records)

	default:
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"Project ID", "Billing Account", "Billing Enabled"})
		tw.SetStyle(table.StyleRounded)
		for _, project := range projects {
			enabled := text.FgGreen.Sprint("yes")
			if !project.BillingEnabled {
				enabled = text.FgRed.Sprint("no")
			}
			tw.AppendRow(table.Row{project.ProjectID, project.BillingAccount, enabled})
		}
		tw.Render()
		return nil
	}
}

// RenderInventory writes the dataset/table inventory in the chosen format
func RenderInventory(w io.Writer, inventory []model.DatasetInfo, format model.Format) error {
	switch format {
	case model.FormatJSON:
		return renderJSON(w, inventory)

	case model.FormatCSV:
		var records [][]string
		for _, dataset := range inventory {
			for _, t := range dataset.Tables {
				records = append(records, []string{
					dataset.DatasetID,
					t.TableID,
					t.Created.Format("2006-01-02 15:04:05 MST"),
					strconv.FormatUint(t.NumRows, 10),
				})
			}
		}
		return renderCSV(w, []string{"dataset_id", "table_id", "created", "num_rows"}, records)

	default:
		if len(inventory) == 0 {
			fmt.Fprintln(w, "No datasets found.")
			return nil
		}
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"Dataset", "Table", "Created", "Rows"})
		tw.SetStyle(table.StyleRounded)
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, Align: text.AlignRight},
		})
		for _, dataset := range inventory {
			if len(dataset.Tables) == 0 {
				tw.AppendRow(table.Row{dataset.DatasetID, text.Faint.Sprint("(empty)"), "", ""})
				continue
			}
			for _, t := range dataset.Tables {
				created := ""
				if !t.Created.IsZero() {
					created = t.Created.Format("2006-01-02 15:04:05 MST")
				}
				tw.AppendRow(table.Row{dataset.DatasetID, t.TableID, created, t.NumRows})
			}
		}
		tw.Render()
		return nil
	}
}

func renderJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func renderCSV(w io.Writer, header []string, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
