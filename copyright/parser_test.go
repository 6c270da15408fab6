package copyright

import (
	"testing"

	"github.com/hookwright/copyright-hooks/comment_markers"
	"github.com/hookwright/copyright-hooks/copyright/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		markers    comment_markers.MarkerPair
		signifiers string
		start      int
		end        int
		holder     string
	}{
		{"year first", "# Copyright (c) 2020 Alice", comment_markers.Hash, "Copyright (c)", 2020, 2020, "Alice"},
		{"year first range", "# Copyright (c) 2020 - 2022 Alice", comment_markers.Hash, "Copyright (c)", 2020, 2022, "Alice"},
		{"compact range", "// copyright 2018-2019 Acme Inc.", comment_markers.Slash, "copyright", 2018, 2019, "Acme Inc."},
		{"name first", "// (c) Alice 2019", comment_markers.Slash, "(c)", 2019, 2019, "Alice"},
		{"name first range", "// Copyright Alice Smith 2018 - 2020", comment_markers.Slash, "Copyright", 2018, 2020, "Alice Smith"},
		{"symbol", "-- © 2021 Bob", comment_markers.Dash, "©", 2021, 2021, "Bob"},
		{"no space after marker", "#Copyright 2021 Bob", comment_markers.Hash, "Copyright", 2021, 2021, "Bob"},
		{"html", "<!--- Copyright (c) 2020 Alice -->", comment_markers.HTML, "Copyright (c)", 2020, 2020, "Alice"},
		{"block", "/* (c) 2021 - 2023 Bob */", comment_markers.Block, "(c)", 2021, 2023, "Bob"},
		{"trailing blanks", "# Copyright 2020 Alice   ", comment_markers.Hash, "Copyright", 2020, 2020, "Alice"},
		{"year first name with digits", "# Copyright 2020 Team 1999", comment_markers.Hash, "Copyright", 2020, 2020, "Team 1999"},
		{"name first name with digits", "# Copyright R2D2 Corp 2021", comment_markers.Hash, "Copyright", 2021, 2021, "R2D2 Corp"},
		{"crlf", "# Copyright 2020 Alice\r", comment_markers.Hash, "Copyright", 2020, 2020, "Alice"},
		{"year first name starting with digits", "# Copyright (c) 2020 3M Company", comment_markers.Hash, "Copyright (c)", 2020, 2020, "3M Company"},
		{"year first range name starting with digits", "# (c) 2019 - 2021 3M", comment_markers.Hash, "(c)", 2019, 2021, "3M"},
		{"name first name starting with digits", "// Copyright 3M Company 2018 - 2020", comment_markers.Slash, "Copyright", 2018, 2020, "3M Company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotation, err := ParseLine(tt.line, tt.markers)
			require.NoError(t, err)
			require.NotNil(t, annotation)

			assert.Equal(t, tt.markers, annotation.Markers)
			assert.Equal(t, tt.signifiers, annotation.Signifiers)
			assert.Equal(t, tt.start, annotation.StartYear)
			assert.Equal(t, tt.end, annotation.EndYear)
			assert.Equal(t, tt.holder, annotation.Name)
		})
	}
}

func TestParseLine_NoMatch(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		markers comment_markers.MarkerPair
	}{
		{"empty", "", comment_markers.Hash},
		{"plain comment", "# just a comment from 2020", comment_markers.Hash},
		{"no year", "# Copyright Alice", comment_markers.Hash},
		{"no name", "# Copyright 2020", comment_markers.Hash},
		{"marker not at start", "x = 1  # Copyright 2020 Alice", comment_markers.Hash},
		{"wrong marker", "// Copyright 2020 Alice", comment_markers.Hash},
		{"missing trailing marker", "<!--- Copyright 2020 Alice", comment_markers.HTML},
		{"five digit year", "# Copyright 20201 Alice", comment_markers.Hash},
		{"three digit year", "# Copyright 202 Alice", comment_markers.Hash},
		{"name first digits glued to year", "# Copyright Alice12020", comment_markers.Hash},
		{"year range only", "# Copyright 2020 - 2021", comment_markers.Hash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotation, err := ParseLine(tt.line, tt.markers)
			require.NoError(t, err)
			assert.Nil(t, annotation)
		})
	}
}

func TestParseLine_RejectsMultipleLines(t *testing.T) {
	_, err := ParseLine("# Copyright 2020 Alice\n# more", comment_markers.Hash)
	assert.Error(t, err)
}

func TestParseLine_InvalidRange(t *testing.T) {
	_, err := ParseLine("# Copyright 2025 - 2020 Alice", comment_markers.Hash)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidYearRange)
}

func TestParseLine_Spans(t *testing.T) {
	line := "# Copyright (c) 2020 - 2022 Alice"
	annotation, err := ParseLine(line, comment_markers.Hash)
	require.NoError(t, err)
	require.NotNil(t, annotation)

	assert.True(t, annotation.IsRange())
	assert.Equal(t, "2020 - 2022", line[annotation.YearSpan.Start:annotation.YearSpan.End])
	assert.Equal(t, "2020", line[annotation.StartSpan.Start:annotation.StartSpan.End])
	assert.Equal(t, "2022", line[annotation.EndSpan.Start:annotation.EndSpan.End])
	assert.Equal(t, line, annotation.Text)

	single, err := ParseLine("# Copyright 2020 Alice", comment_markers.Hash)
	require.NoError(t, err)
	assert.False(t, single.IsRange())
	assert.Equal(t, single.YearSpan, single.StartSpan)
}

func TestParseComment(t *testing.T) {
	content := "#!/bin/sh\n\n# Copyright 2020 Alice\necho hi\n"

	annotation, err := ParseComment(content, comment_markers.Hash)
	require.NoError(t, err)
	require.NotNil(t, annotation)

	assert.Equal(t, 2, annotation.Line)
	assert.Equal(t, 11, annotation.Offset)
	assert.Equal(t, "# Copyright 2020 Alice", annotation.Text)
	assert.Equal(t, "2020", content[annotation.YearSpan.Start:annotation.YearSpan.End])
}

func TestParseComment_None(t *testing.T) {
	annotation, err := ParseComment("print('hello')\n", comment_markers.Hash)
	require.NoError(t, err)
	assert.Nil(t, annotation)

	annotation, err = ParseComment("", comment_markers.Hash)
	require.NoError(t, err)
	assert.Nil(t, annotation)
}

func TestParseComment_Multiple(t *testing.T) {
	content := "# Copyright 2020 Alice\n# Copyright 2021 Bob\n"

	annotation, err := ParseComment(content, comment_markers.Hash)
	require.Error(t, err)
	assert.Nil(t, annotation)
	assert.ErrorIs(t, err, ErrMultipleAnnotations)

	var multiErr *MultipleAnnotationsError
	require.ErrorAs(t, err, &multiErr)
	require.Len(t, multiErr.Annotations, 2)
	assert.Equal(t, "Alice", multiErr.Annotations[0].Name)
	assert.Equal(t, "Bob", multiErr.Annotations[1].Name)
	assert.Contains(t, err.Error(), "line 2")
}

func TestFormatParseRoundTrip(t *testing.T) {
	shapes := map[string]comment_markers.MarkerPair{
		"hash":      comment_markers.Hash,
		"slash":     comment_markers.Slash,
		"dash":      comment_markers.Dash,
		"html":      comment_markers.HTML,
		"block":     comment_markers.Block,
		"percent":   comment_markers.Percent,
		"semicolon": comment_markers.Semicolon,
	}
	formats := []string{DefaultFormat, "Copyright {name} {year}", "(c) {year} {name}. All rights reserved"}
	years := [][2]int{{2020, 2020}, {2019, 2023}}

	holders := []string{"Alice", "3M Company", "R2D2 Corp"}

	for shapeName, markers := range shapes {
		for _, format := range formats {
			for _, span := range years {
				for _, holder := range holders {
					text := BuildAnnotation(format, holder, span[0], span[1], markers)

					annotation, err := ParseLine(text, markers)
					require.NoError(t, err, "%s %q", shapeName, text)
					require.NotNil(t, annotation, "%s %q", shapeName, text)

					assert.Equal(t, span[0], annotation.StartYear, text)
					assert.Equal(t, span[1], annotation.EndYear, text)
					assert.Contains(t, annotation.Name, holder, text)
					assert.Equal(t, text, annotation.Text)
				}
			}
		}
	}
}
