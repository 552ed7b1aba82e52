package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/greenbasket/grocer-cli/internal/model"
)

var money = message.NewPrinter(language.AmericanEnglish)

// renderPlan writes a cart plan in the requested format. An empty output path
// means stdout; xlsx always needs a file.
func renderPlan(plan *model.CartPlan, format, output string) error {
	switch format {
	case "table":
		return withWriter(output, func(w io.Writer) error { return writeTable(w, plan) })
	case "json":
		return withWriter(output, func(w io.Writer) error { return writeJSON(w, plan) })
	case "csv":
		return withWriter(output, func(w io.Writer) error { return writeCSV(w, plan) })
	case "xlsx":
		if output == "" {
			return eris.New("output: xlsx format requires --output")
		}
		return writeXLSX(output, plan)
	default:
		return eris.Errorf("output: unknown format %q", format)
	}
}

func withWriter(output string, fn func(io.Writer) error) error {
	if output == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return eris.Wrapf(err, "output: create %s", output)
	}
	defer f.Close() //nolint:errcheck
	return fn(f)
}

func writeTable(w io.Writer, plan *model.CartPlan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "INGREDIENT\tSTORE\tPICK\tPRICE\tCHEAPER\tWHY")
	for _, item := range plan.Items {
		if item.Status != model.ItemAvailable {
			fmt.Fprintf(tw, "%s\t-\tunavailable\t-\t-\t%s\n", item.Label, item.Reason)
			continue
		}
		cheaper := "-"
		if item.Cheaper != nil {
			cheaper = money.Sprintf("%s ($%.2f)", item.Cheaper.Candidate.Title, item.Cheaper.Candidate.Price)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.Label,
			item.StoreID,
			item.EthicalDefault.Candidate.Title,
			money.Sprintf("$%.2f", item.EthicalDefault.Candidate.Price),
			cheaper,
			item.Reason,
		)
	}
	fmt.Fprintln(tw)

	for _, id := range sortedStores(plan.Totals.StoreSubtotals) {
		fmt.Fprintf(tw, "%s subtotal\t%s\n", id, money.Sprintf("$%.2f", plan.Totals.StoreSubtotals[id]))
	}
	fmt.Fprintf(tw, "Recommended total\t%s\n", money.Sprintf("$%.2f", plan.Totals.RecommendedTotal))
	if plan.Totals.PotentialSavings > 0 {
		fmt.Fprintf(tw, "Cheaper total\t%s (save %s)\n",
			money.Sprintf("$%.2f", plan.Totals.CheaperTotal),
			money.Sprintf("$%.2f", plan.Totals.PotentialSavings),
		)
	}
	if len(plan.StorePlan.Unavailable) > 0 {
		fmt.Fprintf(tw, "Unavailable\t%d items\n", len(plan.StorePlan.Unavailable))
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, plan *model.CartPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return eris.Wrap(err, "output: encode json")
	}
	return nil
}

var csvHeader = []string{"ingredient", "store", "status", "pick", "price", "cheaper", "cheaper_price", "reason"}

func writeCSV(w io.Writer, plan *model.CartPlan) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "output: write csv header")
	}
	for _, item := range plan.Items {
		row := itemRow(item)
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "output: write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return eris.Wrap(err, "output: flush csv")
	}
	return nil
}

func writeXLSX(path string, plan *model.CartPlan) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Cart")
	if err != nil {
		return eris.Wrap(err, "output: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range csvHeader {
		header.AddCell().Value = h
	}
	for _, item := range plan.Items {
		row := sheet.AddRow()
		for _, v := range itemRow(item) {
			row.AddCell().Value = v
		}
	}

	totals := sheet.AddRow()
	totals.AddCell().Value = "recommended_total"
	totals.AddCell().Value = strconv.FormatFloat(plan.Totals.RecommendedTotal, 'f', 2, 64)

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "output: save %s", path)
	}
	return nil
}

// itemRow flattens one cart item for csv and xlsx output.
func itemRow(item model.CartItem) []string {
	row := []string{item.Label, item.StoreID, item.Status, "", "", "", "", item.Reason}
	if item.EthicalDefault != nil {
		row[3] = item.EthicalDefault.Candidate.Title
		row[4] = strconv.FormatFloat(item.EthicalDefault.Candidate.Price, 'f', 2, 64)
	}
	if item.Cheaper != nil {
		row[5] = item.Cheaper.Candidate.Title
		row[6] = strconv.FormatFloat(item.Cheaper.Candidate.Price, 'f', 2, 64)
	}
	return row
}

func sortedStores(subtotals map[string]float64) []string {
	ids := make([]string, 0, len(subtotals))
	for id := range subtotals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
