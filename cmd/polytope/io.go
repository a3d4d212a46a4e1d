package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/polytope/concrete"
	"github.com/katalvlaran/polytope/polyio"
)

// readPolytope loads --in, picking the format from its extension; stdin
// is read as YAML.
func (a *app) readPolytope(cmd *cobra.Command) (*concrete.Polytope, error) {
	var r io.Reader = cmd.InOrStdin()
	format := polyio.FormatYAML
	if a.in != "" && a.in != "-" {
		f, err := os.Open(a.in)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		if format, err = polyio.ParseFormat(strings.TrimPrefix(filepath.Ext(a.in), ".")); err != nil {
			return nil, err
		}
	}
	if format == polyio.FormatOFF {
		return polyio.ReadOFF(r, a.cfg.ConcreteOptions()...)
	}
	doc, err := polyio.Decode(r, format)
	if err != nil {
		return nil, err
	}

	return polyio.ToPolytope(doc, a.cfg.ConcreteOptions()...)
}

// output opens --out, or stdout when it is empty.
func (a *app) output(cmd *cobra.Command, fn func(w io.Writer) error) error {
	if a.out == "" || a.out == "-" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(a.out)
	if err != nil {
		return err
	}
	if err = fn(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func (a *app) writePolytope(cmd *cobra.Command, p *concrete.Polytope) error {
	format, err := polyio.ParseFormat(a.format)
	if err != nil {
		return err
	}

	return a.output(cmd, func(w io.Writer) error {
		if format == polyio.FormatOFF {
			return polyio.WriteOFF(w, p)
		}

		return polyio.Encode(w, polyio.FromPolytope(p), format)
	})
}

// writeValue encodes a report (info, mesh) as YAML or JSON.
func (a *app) writeValue(cmd *cobra.Command, v any) error {
	format, err := polyio.ParseFormat(a.format)
	if err != nil {
		return err
	}

	return a.output(cmd, func(w io.Writer) error {
		switch format {
		case polyio.FormatJSON:
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		case polyio.FormatYAML:
			enc := yaml.NewEncoder(w)
			if err := enc.Encode(v); err != nil {
				return err
			}
			return enc.Close()
		default:
			return fmt.Errorf("%s output is only available for polytopes: %w", format, polyio.ErrUnsupported)
		}
	})
}
