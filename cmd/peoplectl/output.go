package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/awesomepeople/people/api/internal/domain"
)

const (
	formatHuman = "human"
	formatJSON  = "json"
)

func writePerson(w io.Writer, format string, p *domain.Person) error {
	if format == formatJSON {
		return writeJSON(w, p)
	}
	return writePeople(w, format, []domain.Person{*p})
}

func writePeople(w io.Writer, format string, people []domain.Person) error {
	switch format {
	case formatJSON:
		if people == nil {
			people = []domain.Person{}
		}
		return writeJSON(w, people)
	case formatHuman:
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	if len(people) == 0 {
		_, err := fmt.Fprintln(w, "No people.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, p := range people {
		fmt.Fprintf(tw, "%d\t%s\n", p.ID, p.Name)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
