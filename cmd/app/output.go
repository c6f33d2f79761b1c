package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/CHRISCARLON/uk-future-works-model/internal/application"
	"github.com/CHRISCARLON/uk-future-works-model/internal/domain"
)

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatMaybeDate(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printPopulation(result application.PopulationResult) {
	fmt.Println("LOADED")
	printKV([][2]string{
		{"organisations", strconv.Itoa(result.Organisations)},
		{"contact details", strconv.Itoa(result.Contacts)},
		{"contact links", strconv.Itoa(result.ContactLinks)},
		{"planned programmes", strconv.Itoa(result.Programmes)},
		{"network links", strconv.Itoa(result.NetworkLinks)},
		{"unified rows", strconv.FormatInt(result.UnifiedRows, 10)},
	})
}

func printGroupCounts(title string, items []domain.GroupCount) {
	fmt.Printf("\n%s\n", title)
	rows := make([][]string, 0, len(items))
	for _, g := range items {
		rows = append(rows, []string{g.Key, strconv.FormatInt(g.Count, 10)})
	}
	printTable([]string{"VALUE", "COUNT"}, rows)
}

func printSummary(report domain.SummaryReport) {
	fmt.Printf("SUMMARY %s (generated %s)\n\n", report.Path, report.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Println("TABLE COUNTS")
	rows := make([][]string, 0, len(report.TableCounts))
	for _, tc := range report.TableCounts {
		rows = append(rows, []string{tc.Table, strconv.FormatInt(tc.Count, 10)})
	}
	printTable([]string{"TABLE", "ROWS"}, rows)

	fmt.Println()
	printKV([][2]string{
		{"active network links", strconv.FormatInt(report.ActiveLinks, 10)},
		{"earliest planned start", formatMaybeDate(report.EarliestPlannedStart)},
		{"latest planned start", formatMaybeDate(report.LatestPlannedStart)},
	})

	printGroupCounts("BY UTILITY TYPE", report.ByUtilityType)
	printGroupCounts("BY LINK STATUS", report.ByLinkStatus)
	printGroupCounts("BY SCHEME STATUS", report.BySchemeStatus)
	printGroupCounts("BY INSTALLATION METHOD", report.ByInstallationMethod)
	printGroupCounts("BY WORK TYPE", report.ByWorkType)
	printGroupCounts("BY ORGANISATION", report.ByOrganisation)

	fmt.Println("\nQUALITY FINDINGS")
	if len(report.QualityFindings) == 0 {
		fmt.Println("none")
		return
	}
	findings := make([][]string, 0, len(report.QualityFindings))
	for _, f := range report.QualityFindings {
		findings = append(findings, []string{f.SystemID, f.ObjectName, strings.Join(f.MissingFields, ", ")})
	}
	printTable([]string{"SYSTEMID", "NAME", "MISSING"}, findings)
}
