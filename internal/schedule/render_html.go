package schedule

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bxtheory/examplan/internal/domain"
)

// RenderHTML renders a plan as an HTML document fragment by converting the
// canonical markdown. The table extension is required: the schedule body is
// a pipe table.
func RenderHTML(plan domain.FullPlan) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(plan)), &buf); err != nil {
		return "", fmt.Errorf("converting schedule markdown to html: %w", err)
	}
	return buf.String(), nil
}
