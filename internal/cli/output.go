package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Lzww0608/oid"
	"github.com/Lzww0608/oid/internal/config"
	"github.com/Lzww0608/oid/store"
)

// description is the printed form of an OID.
type description struct {
	OID     string    `json:"oid"`
	Prefix  string    `json:"prefix"`
	Value   string    `json:"value"`
	UUID    string    `json:"uuid"`
	Version int       `json:"version"`
	Time    time.Time `json:"time"`
	Label   string    `json:"label,omitempty"`
}

func describe(o oid.OID) description {
	return description{
		OID:     o.String(),
		Prefix:  o.Prefix(),
		Value:   o.Value(),
		UUID:    o.UUID().String(),
		Version: int(o.UUID().Version()),
		Time:    o.Time().UTC(),
	}
}

func describeRecord(r store.Record) description {
	d := describe(r.ID)
	d.Label = r.Label
	return d
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeIDs prints one OID per line, or a JSON array of descriptions.
func writeIDs(w io.Writer, format string, ds []description) error {
	if format == config.OutputJSON {
		return writeJSON(w, ds)
	}
	for _, d := range ds {
		if _, err := fmt.Fprintln(w, d.OID); err != nil {
			return err
		}
	}
	return nil
}

// writeDetails prints every field of each description.
func writeDetails(w io.Writer, format string, ds []description) error {
	if format == config.OutputJSON {
		return writeJSON(w, ds)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for i, d := range ds {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "oid:\t%s\n", d.OID)
		fmt.Fprintf(tw, "prefix:\t%s\n", d.Prefix)
		fmt.Fprintf(tw, "value:\t%s\n", d.Value)
		fmt.Fprintf(tw, "uuid:\t%s\n", d.UUID)
		fmt.Fprintf(tw, "version:\t%d\n", d.Version)
		fmt.Fprintf(tw, "time:\t%s\n", d.Time.Format(time.RFC3339Nano))
		if d.Label != "" {
			fmt.Fprintf(tw, "label:\t%s\n", d.Label)
		}
	}
	return tw.Flush()
}

// writeRecords prints a table of records.
func writeRecords(w io.Writer, format string, records []store.Record) error {
	if format == config.OutputJSON {
		ds := make([]description, 0, len(records))
		for _, r := range records {
			ds = append(ds, describeRecord(r))
		}
		return writeJSON(w, ds)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OID\tCREATED\tLABEL")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Label)
	}
	return tw.Flush()
}
