package query

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/ivlev/actiondirector/internal/director"
)

// Run evaluates a JSONPath expression against the serialized form of the asset.
func Run(a *director.Asset, expr string) ([]any, error) {
	return RunDocument(director.Serialize(a), expr)
}

// RunDocument evaluates a JSONPath expression against a document.
func RunDocument(doc *director.Document, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}

	data, err := director.EncodeDocument(doc, director.FormatJSON)
	if err != nil {
		return nil, err
	}
	root, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return x.Get(root), nil
}

// Render formats query results as indented JSON with sorted keys.
func Render(results []any) string {
	return oj.JSON(results, &oj.Options{Indent: 2, Sort: true})
}
