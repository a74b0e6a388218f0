// Package config loads simulation run configurations from HCL files.
//
package config

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
)

// Run holds the knobs of one simulation run.
//
type Run struct {
	MaxTime uint64 // iteration ceiling, 0 = unbounded (fixed-tick only)
	Mode    string // "tick" or "event"
	Trace   bool
	Depth   int
}

// Default returns the configuration matching a plain, unconfigured run.
//
func Default() Run {
	return Run{
		MaxTime: 1000000,
		Mode:    "tick",
		Trace:   true,
		Depth:   99,
	}
}

// file-level HCL schema; pointers distinguish absent attributes from
// explicit zero values.
type hclFile struct {
	Run *hclRun `hcl:"run,block"`
}

type hclRun struct {
	MaxTime *uint64 `hcl:"max_time,optional"`
	Mode    *string `hcl:"mode,optional"`
	Trace   *bool   `hcl:"trace,optional"`
	Depth   *int    `hcl:"depth,optional"`
}

// Load reads path and returns the configuration it describes, with defaults
// filled in for anything the file leaves out.
//
func Load(path string) (Run, error) {
	r := Default()
	f, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return r, errors.Wrap(diags, "parse "+path)
	}
	var cf hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &cf); diags.HasErrors() {
		return r, errors.Wrap(diags, "decode "+path)
	}
	if cf.Run == nil {
		return r, nil
	}
	if cf.Run.MaxTime != nil {
		r.MaxTime = *cf.Run.MaxTime
	}
	if cf.Run.Mode != nil {
		r.Mode = *cf.Run.Mode
	}
	if cf.Run.Trace != nil {
		r.Trace = *cf.Run.Trace
	}
	if cf.Run.Depth != nil {
		r.Depth = *cf.Run.Depth
	}
	return r, r.validate()
}

func (r Run) validate() error {
	switch r.Mode {
	case "tick", "event":
	default:
		return errors.New("unknown run mode " + r.Mode)
	}
	if r.Depth < 1 {
		return errors.New("trace depth must be at least 1")
	}
	return nil
}
