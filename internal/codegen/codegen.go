// Package codegen renders a pandas script reproducing the operations
// applied to a workspace. The listing is an audit artifact returned to the
// caller; nothing here executes it.
package codegen

import (
	"fmt"
	"strings"
	"time"
)

// Step is one applied operation: a title and its code snippet.
type Step struct {
	Title string
	Code  string
}

// History accumulates steps in application order. Not safe for concurrent
// use; the owning workspace serializes access.
type History struct {
	steps []Step
}

// Append records a step.
func (h *History) Append(title, code string) {
	h.steps = append(h.steps, Step{Title: title, Code: code})
}

// Steps returns the recorded steps in order.
func (h *History) Steps() []Step {
	return h.steps
}

// Render produces the complete script: header, imports, then every step.
func (h *History) Render() string {
	if len(h.steps) == 0 {
		return "# No operations applied yet\n"
	}
	var b strings.Builder
	b.WriteString("# Data preprocessing pipeline\n")
	fmt.Fprintf(&b, "# Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("import pandas as pd\n")
	b.WriteString("import numpy as np\n")
	b.WriteString("from scipy import stats\n")
	b.WriteString("from sklearn.preprocessing import StandardScaler, MinMaxScaler\n")
	for _, s := range h.steps {
		fmt.Fprintf(&b, "\n# %s\n%s\n", s.Title, strings.TrimRight(s.Code, "\n"))
	}
	return b.String()
}

// pyList renders a slice of column names as a Python list literal.
func pyList(names []string) string {
	if len(names) == 0 {
		return "list(df.select_dtypes(include=[np.number]).columns)"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pyString(n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func pyString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
