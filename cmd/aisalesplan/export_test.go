package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/DennisFaucher/aisalesplan"
	main "github.com/DennisFaucher/aisalesplan/cmd/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportDeps(stdout io.Writer, exportFn func(w io.Writer, doc *aisalesplan.ExportDocument) error) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Researcher: &mock.Researcher{
			ResearchFn: func(_ context.Context, customer, theme string) (*aisalesplan.Research, error) {
				return &aisalesplan.Research{Customer: customer, Theme: theme, Markdown: researchMarkdown}, nil
			},
		},
		Exporter: &mock.Exporter{
			ExportFn:      exportFn,
			ContentTypeFn: func() string { return "application/octet-stream" },
			ExtensionFn:   func() string { return "docx" },
		},
	}
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes exported document to output path", func(t *testing.T) {
		t.Parallel()

		var gotDoc *aisalesplan.ExportDocument
		out := filepath.Join(t.TempDir(), "out.docx")
		stdout := &bytes.Buffer{}
		deps := exportDeps(stdout, func(w io.Writer, doc *aisalesplan.ExportDocument) error {
			gotDoc = doc
			_, err := io.WriteString(w, "docx-bytes")
			return err
		})

		cmd := &main.ExportCmd{Customer: "Acme", Theme: "AI", Out: out}
		require.NoError(t, cmd.Run(deps))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "docx-bytes", string(data))
		require.NotNil(t, gotDoc)
		assert.Equal(t, "Acme", gotDoc.Customer)
		assert.Equal(t, researchMarkdown, gotDoc.Markdown)
		assert.Equal(t, "Wrote "+out+"\n", stdout.String())
	})

	t.Run("removes partial file on export error", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "out.docx")
		deps := exportDeps(&bytes.Buffer{}, func(w io.Writer, _ *aisalesplan.ExportDocument) error {
			_, _ = io.WriteString(w, "partial")
			return errors.New("boom")
		})

		err := (&main.ExportCmd{Customer: "Acme", Theme: "AI", Out: out}).Run(deps)
		require.Error(t, err)

		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("fails when output directory does not exist", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "missing", "out.docx")
		deps := exportDeps(&bytes.Buffer{}, func(io.Writer, *aisalesplan.ExportDocument) error {
			t.Fatal("export should not be called")
			return nil
		})

		err := (&main.ExportCmd{Customer: "Acme", Theme: "AI", Out: out}).Run(deps)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create")
	})
}
