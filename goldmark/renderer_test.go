package goldmark_test

import (
	"errors"
	"testing"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/goldmark"
	"github.com/DennisFaucher/aisalesplan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements aisalesplan.Renderer at compile time.
var _ aisalesplan.Renderer = (*goldmark.Renderer)(nil)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders pipe tables", func(t *testing.T) {
		t.Parallel()

		md := "| Theme | Detail |\n|---|---|\n| Chatbots | Support |"

		out, err := goldmark.NewRenderer().Render(md)

		require.NoError(t, err)
		assert.Contains(t, out, "<table>")
		assert.Contains(t, out, "<th>Theme</th>")
		assert.Contains(t, out, "<td>Chatbots</td>")
	})

	t.Run("renders headings", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("## WWT Capabilities")

		require.NoError(t, err)
		assert.Contains(t, out, "<h2>WWT Capabilities</h2>")
	})

	t.Run("turns newlines into line breaks", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("[1] https://example.com/a\n[2] https://example.com/b")

		require.NoError(t, err)
		assert.Contains(t, out, "<br")
		assert.Contains(t, out, `<a href="https://example.com/a">`)
	})

	t.Run("omits raw HTML", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("hello <script>alert(1)</script>")

		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
	})

	t.Run("applies transformers in order", func(t *testing.T) {
		t.Parallel()

		first := &mock.HTMLTransformer{TransformFn: func(html string) (string, error) {
			return html + "first", nil
		}}
		second := &mock.HTMLTransformer{TransformFn: func(html string) (string, error) {
			return html + "second", nil
		}}

		out, err := goldmark.NewRenderer(first, second).Render("text")

		require.NoError(t, err)
		assert.Contains(t, out, "firstsecond")
	})

	t.Run("returns transformer error", func(t *testing.T) {
		t.Parallel()

		failing := &mock.HTMLTransformer{TransformFn: func(string) (string, error) {
			return "", errors.New("bad html")
		}}

		_, err := goldmark.NewRenderer(failing).Render("text")

		require.EqualError(t, err, "bad html")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goldmark.NewRenderer().Render("  \n")

		require.Error(t, err)
		assert.Equal(t, aisalesplan.EINVALID, aisalesplan.ErrorCode(err))
	})
}
