package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	bizdex "github.com/kailas-cloud/bizdex/pkg/sdk"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type businessView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CategoryID    string   `json:"categoryId"`
	City          string   `json:"city"`
	Rating        float64  `json:"rating"`
	IsRemote      bool     `json:"isRemote"`
	IsFeatured    bool     `json:"isFeatured"`
	DistanceKm    *float64 `json:"distanceKm,omitempty"`
	DistanceLabel string   `json:"distanceLabel,omitempty"`
	Score         *float64 `json:"score,omitempty"`
}

type explanationView struct {
	businessView
	Breakdown bizdex.ScoreBreakdown `json:"breakdown"`
}

type batchView struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func toView(b *bizdex.Business) businessView {
	return businessView{
		ID:            b.ID,
		Name:          b.Name,
		CategoryID:    b.CategoryID,
		City:          b.City,
		Rating:        b.Rating,
		IsRemote:      b.IsRemote,
		IsFeatured:    b.IsFeatured,
		DistanceKm:    b.DistanceKm,
		DistanceLabel: b.DistanceLabel(),
		Score:         b.Score,
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printBusinesses(out io.Writer, format string, bs []bizdex.Business) error {
	views := make([]businessView, len(bs))
	for i := range bs {
		views[i] = toView(&bs[i])
	}
	if format == outputJSON {
		return writeJSON(out, views)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tCATEGORY\tCITY\tRATING\tDISTANCE\tSCORE")
	for i, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f\t%s\t%s\n",
			i+1, v.ID, v.Name, v.CategoryID, v.City, v.Rating, dash(v.DistanceLabel), score(v.Score))
	}
	return tw.Flush()
}

func printExplanations(out io.Writer, format string, es []bizdex.Explanation) error {
	if format == outputJSON {
		views := make([]explanationView, len(es))
		for i := range es {
			views[i] = explanationView{businessView: toView(&es[i].Business), Breakdown: es[i].Breakdown}
		}
		return writeJSON(out, views)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tRATING\tEXPERIENCE\tCOMPLETENESS\tDISTANCE\tTEXT\tTOTAL")
	for i := range es {
		bd := es[i].Breakdown
		fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.4f\n",
			i+1, es[i].Business.ID, bd.Rating, bd.Experience, bd.Completeness, bd.Distance, bd.TextMatch, bd.Total)
	}
	return tw.Flush()
}

func printBusiness(out io.Writer, format string, b *bizdex.Business) error {
	if format == outputJSON {
		return writeJSON(out, b)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", b.ID},
		{"Name", b.Name},
		{"Category", fmt.Sprintf("%s (%s)", b.Category, b.CategoryID)},
		{"City", b.City},
		{"Address", b.Address},
		{"Location", fmt.Sprintf("%.4f, %.4f", b.Lat, b.Lng)},
		{"Rating", fmt.Sprintf("%.1f (%d reviews)", b.Rating, b.ReviewCount)},
		{"Experience", fmt.Sprintf("%d years", b.YearsOfExperience)},
		{"Flags", flags(b)},
		{"Phone", b.Phone},
		{"Email", b.Email},
		{"Website", b.Website},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], dash(r[1]))
	}
	return tw.Flush()
}

func printBatch(out io.Writer, format string, res []bizdex.BatchResult) error {
	views := make([]batchView, len(res))
	failed := 0
	for i, r := range res {
		views[i] = batchView{ID: r.ID, OK: r.OK}
		if r.Err != nil {
			views[i].Error = r.Err.Error()
			failed++
		}
	}
	if format == outputJSON {
		return writeJSON(out, views)
	}
	for _, v := range views {
		if !v.OK {
			fmt.Fprintf(out, "FAIL %s: %s\n", v.ID, v.Error)
		}
	}
	fmt.Fprintf(out, "%d imported, %d failed\n", len(views)-failed, failed)
	return nil
}

func flags(b *bizdex.Business) string {
	var s string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{b.IsVerified, "verified"},
		{b.IsFeatured, "featured"},
		{b.IsPremium, "premium"},
		{b.IsRemote, "remote"},
	} {
		if !f.on {
			continue
		}
		if s != "" {
			s += ", "
		}
		s += f.name
	}
	return s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func score(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *p)
}
