package comment_markers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		path string
		want MarkerPair
	}{
		{"main.py", Hash},
		{"scripts/deploy.sh", Hash},
		{"lib/app.rb", Hash},
		{"Cargo.toml", Hash},
		{"main.go", Slash},
		{"src/app.ts", Slash},
		{"index.js", Slash},
		{"Main.java", Slash},
		{"widget.cpp", Slash},
		{"Program.cs", Block},
		{"site.css", Block},
		{"schema.sql", Dash},
		{"init.lua", Dash},
		{"README.md", HTML},
		{"index.html", HTML},
		{"paper.tex", Percent},
		{"core.clj", Semicolon},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Lookup(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_Unsupported(t *testing.T) {
	_, err := Lookup("archive.unknownext")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFileType))

	var unsupported *UnsupportedFileTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".unknownext", unsupported.Extension)
	assert.Equal(t, []string{"unknownext"}, unsupported.Tags)
	assert.Contains(t, err.Error(), "the file extension '.unknownext' is not currently supported")
}

func TestTags(t *testing.T) {
	tags := Tags("pkg/module.py")
	require.NotEmpty(t, tags)
	assert.Contains(t, tags, "python")
	assert.Contains(t, tags, "py")

	seen := make(map[string]bool)
	for _, tag := range tags {
		assert.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
	}

	assert.Empty(t, Tags("LICENSE"))
}

func TestMarkerPair_Wrap(t *testing.T) {
	assert.Equal(t, "# text", Hash.Wrap("text"))
	assert.Equal(t, "# text", Hash.Wrap("# text"))
	assert.Equal(t, "<!--- text -->", HTML.Wrap("text"))
	assert.Equal(t, "<!--- text -->", HTML.Wrap("<!--- text -->"))
	assert.Equal(t, "<!--- text -->", HTML.Wrap("<!--- text"))
	assert.Equal(t, "/* text */", Block.Wrap("text */"))
}

func TestMarkerPair_HasTrailing(t *testing.T) {
	assert.False(t, Hash.HasTrailing())
	assert.True(t, HTML.HasTrailing())
}
