package aisalesplan_test

import (
	"testing"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete document", func(t *testing.T) {
		t.Parallel()

		doc := &aisalesplan.ExportDocument{Customer: "Acme", Theme: "AI", Markdown: "text"}

		assert.NoError(t, doc.Validate())
	})

	for name, doc := range map[string]*aisalesplan.ExportDocument{
		"missing customer": {Theme: "AI", Markdown: "text"},
		"missing theme":    {Customer: "Acme", Markdown: "text"},
		"blank markdown":   {Customer: "Acme", Theme: "AI", Markdown: " \n"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := doc.Validate()

			require.Error(t, err)
			assert.Equal(t, aisalesplan.EINVALID, aisalesplan.ErrorCode(err))
			assert.Equal(t, "customer, theme, and markdown are required", aisalesplan.ErrorMessage(err))
		})
	}
}

func TestExportDocument_TitleAndFilename(t *testing.T) {
	t.Parallel()

	doc := &aisalesplan.ExportDocument{Customer: " Acme Corp ", Theme: "AI", Markdown: "x"}

	assert.Equal(t, "Acme Corp AI Research", doc.Title())
	assert.Equal(t, "Acme_Corp_AI_Research.docx", doc.Filename("docx"))
}
