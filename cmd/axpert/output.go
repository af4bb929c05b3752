package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/solarkit/go-axpert/entities"
)

// formatResult renders a query result in the requested output format.
//
// raw prints key=value pairs, one line per field when pretty is set.
// json emits one JSON object, indented when pretty is set. table lays
// the fields out with their entity description and inverter setup
// program number.
func formatResult(res *entities.Result, format string, pretty bool) (string, error) {
	switch format {
	case "raw":
		return formatRaw(res, pretty), nil
	case "json":
		return formatJSON(res, pretty)
	case "table":
		return formatTable(res)
	}
	return "", fmt.Errorf("format %q is not supported", format)
}

func formatRaw(res *entities.Result, pretty bool) string {
	pairs := make([]string, 0, res.Len())
	for _, key := range res.Keys() {
		v, _ := res.Get(key)
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, v.String()))
	}
	if pretty {
		return strings.Join(pairs, "\n")
	}
	return strings.Join(pairs, " ")
}

func formatJSON(res *entities.Result, pretty bool) (string, error) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(res.Map(), "", "  ")
	} else {
		out, err = json.Marshal(res.Map())
	}
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(out), nil
}

func formatTable(res *entities.Result) (string, error) {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tDESC\tVALUE\tPROG")

	for _, key := range res.Keys() {
		ent, ok := entities.Entities[key]
		if !ok {
			return "", fmt.Errorf("no entity definition for %q", key)
		}
		v, _ := res.Get(key)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", key, ent.Desc, v.String(), ent.Prog)
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
