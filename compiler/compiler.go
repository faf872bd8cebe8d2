// Package compiler runs the whole pipeline from a record description to Go
// source: parse, validate, plan and emit.
package compiler

import (
	"os"
	"path/filepath"

	"github.com/wippyai/bebytes/codegen"
	"github.com/wippyai/bebytes/errors"
	"github.com/wippyai/bebytes/ir"
	"github.com/wippyai/bebytes/plan"
	"github.com/wippyai/bebytes/schema"
	"github.com/wippyai/bebytes/validate"
)

// Result holds every intermediate product of one compilation.
type Result struct {
	File   *ir.File
	Plan   *plan.Plan
	Source []byte
}

// Check parses and validates src without planning or emitting.
func Check(src string) (*ir.File, error) {
	f, err := schema.Parse(src)
	if err != nil {
		return nil, err
	}
	if err := validate.File(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Compile turns a .bb description into Go source.
func Compile(src string, opts codegen.Options) (*Result, error) {
	f, err := schema.Parse(src)
	if err != nil {
		return nil, err
	}
	return CompileIR(f, opts)
}

// CompileFile reads and compiles a .bb file. When opts.Source is empty the
// file's base name is recorded in the generated header.
func CompileFile(path string, opts codegen.Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "read "+path)
	}
	if opts.Source == "" {
		opts.Source = filepath.Base(path)
	}
	return Compile(string(data), opts)
}

// CompileIR validates, plans and emits an already parsed file, such as one
// imported from WIT.
func CompileIR(f *ir.File, opts codegen.Options) (*Result, error) {
	if err := validate.File(f); err != nil {
		return nil, err
	}
	p, err := plan.Build(f)
	if err != nil {
		return nil, err
	}
	src, err := codegen.Generate(p, opts)
	if err != nil {
		return nil, err
	}
	return &Result{File: f, Plan: p, Source: src}, nil
}
