// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render evaluates contract template text against lease data and
// produces the final contract HTML. Failures are classified so callers can
// tell a bad template from missing data from a bad evaluation.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"rentadmin/internal/models"
)

// ErrNoData is returned when the preview context cannot be resolved — the
// referenced lease does not exist, or no lease exists at all.
var ErrNoData = errors.New("no lease data available to render against")

// SyntaxError wraps a template-grammar failure (unclosed block, unknown
// function, bad pipeline).
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "template syntax: " + e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// RuntimeError wraps an evaluation failure in a syntactically valid
// template (a filter applied to an incompatible value, a missing field,
// or an evaluation that exceeded the render timeout).
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string { return "template evaluation: " + e.Err.Error() }
func (e *RuntimeError) Unwrap() error { return e.Err }

// ContractDataSource resolves the lease context a preview renders against.
// A nil ref means "the most recently created lease"; a nil result with a
// nil error means no eligible lease exists.
type ContractDataSource interface {
	ContractData(ctx context.Context, ref *uuid.UUID) (*models.ContractData, error)
}

// Renderer evaluates template text to HTML. The versioning handlers only
// depend on this interface, so the concrete templating grammar can be
// swapped without touching them.
type Renderer interface {
	Render(ctx context.Context, templateText string, ref *uuid.UUID) (string, error)
}

// Engine is the html/template-backed Renderer. Rendering is read-only:
// the engine holds no mutable state and never writes through its data
// source.
type Engine struct {
	source  ContractDataSource
	funcMap template.FuncMap
	timeout time.Duration
}

// NewEngine creates a rendering engine with the contract filter set and
// the given evaluation timeout. A zero timeout disables the bound.
func NewEngine(source ContractDataSource, timeout time.Duration) *Engine {
	return &Engine{
		source:  source,
		funcMap: contractFuncs(),
		timeout: timeout,
	}
}

// Validate parses templateText and reports a SyntaxError if it is not
// valid in the templating grammar. No data is needed.
func (e *Engine) Validate(templateText string) error {
	if _, err := e.parse(templateText); err != nil {
		return err
	}
	return nil
}

// Render resolves the lease context and evaluates templateText against it.
// Returns ErrNoData, *SyntaxError or *RuntimeError on failure.
func (e *Engine) Render(ctx context.Context, templateText string, ref *uuid.UUID) (string, error) {
	tmpl, err := e.parse(templateText)
	if err != nil {
		return "", err
	}

	data, err := e.source.ContractData(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("resolve render context: %w", err)
	}
	if data == nil {
		return "", ErrNoData
	}

	return e.execute(ctx, tmpl, data)
}

func (e *Engine) parse(templateText string) (*template.Template, error) {
	tmpl, err := template.New("contract").Funcs(e.funcMap).Parse(templateText)
	if err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return tmpl, nil
}

// execute runs template evaluation under the configured timeout. The
// evaluation happens in its own goroutine writing to its own buffer; on
// timeout the goroutine is abandoned and only the channel result is ever
// read, so there is no shared buffer to race on.
func (e *Engine) execute(ctx context.Context, tmpl *template.Template, data *models.ContractData) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		err := tmpl.Execute(&buf, data)
		done <- result{html: buf.String(), err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", &RuntimeError{Err: res.err}
		}
		return res.html, nil
	case <-ctx.Done():
		return "", &RuntimeError{Err: ctx.Err()}
	}
}
