package copyright

import (
	"strings"
	"testing"

	"github.com/hookwright/copyright-hooks/comment_markers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat(DefaultFormat))
	assert.NoError(t, ValidateFormat("{name} owns {year}"))

	err := ValidateFormat("Copyright {year}")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, "the format string 'Copyright {year}' is missing the following required keys: [name]", err.Error())

	err = ValidateFormat("Copyright")
	require.Error(t, err)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, []string{"name", "year"}, formatErr.Missing)
}

func TestBuildAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		markers comment_markers.MarkerPair
		want    string
	}{
		{"python", DefaultFormat, comment_markers.Hash, "# Copyright (c) 2020 - 2025 Alice"},
		{"cpp", DefaultFormat, comment_markers.Slash, "// Copyright (c) 2020 - 2025 Alice"},
		{"markdown", DefaultFormat, comment_markers.HTML, "<!--- Copyright (c) 2020 - 2025 Alice -->"},
		{"already commented", "// Copyright {year} {name}", comment_markers.Slash, "// Copyright 2020 - 2025 Alice"},
		{"already wrapped html", "<!--- Copyright {year} {name} -->", comment_markers.HTML, "<!--- Copyright 2020 - 2025 Alice -->"},
		{"leading marker only", "<!--- Copyright {year} {name}", comment_markers.HTML, "<!--- Copyright 2020 - 2025 Alice -->"},
		{"multi line", "Copyright {year} {name}\nAll rights reserved", comment_markers.Hash, "# Copyright 2020 - 2025 Alice\n# All rights reserved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildAnnotation(tt.format, "Alice", 2020, 2025, tt.markers))
		})
	}
}

func TestInsertAnnotation(t *testing.T) {
	const annotation = "# Copyright (c) 2025 Alice"

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", "# Copyright (c) 2025 Alice\n"},
		{"body", "print(1)\n", "# Copyright (c) 2025 Alice\n\nprint(1)\n"},
		{"body without newline", "print(1)", "# Copyright (c) 2025 Alice\n\nprint(1)\n"},
		{"leading blank lines", "\n\n\nprint(1)\n", "# Copyright (c) 2025 Alice\n\nprint(1)\n"},
		{"shebang", "#!/usr/bin/env python3\nprint(1)\n", "#!/usr/bin/env python3\n\n# Copyright (c) 2025 Alice\n\nprint(1)\n"},
		{"shebang only", "#!/usr/bin/env python3\n", "#!/usr/bin/env python3\n\n# Copyright (c) 2025 Alice\n"},
		{"shebang then blank", "#!/bin/sh\n\necho hi\n", "#!/bin/sh\n\n# Copyright (c) 2025 Alice\n\necho hi\n"},
		{"crlf", "print(1)\r\nprint(2)\r\n", "# Copyright (c) 2025 Alice\r\n\r\nprint(1)\r\nprint(2)\r\n"},
		{"crlf shebang", "#!/bin/sh\r\necho hi\r\n", "#!/bin/sh\r\n\r\n# Copyright (c) 2025 Alice\r\n\r\necho hi\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertAnnotation(tt.content, annotation))
		})
	}
}

func TestInsertAnnotation_MultiLineCRLF(t *testing.T) {
	got := InsertAnnotation("x = 1\r\n", "# Copyright (c) 2025 Alice\n# All rights reserved")
	assert.Equal(t, "# Copyright (c) 2025 Alice\r\n# All rights reserved\r\n\r\nx = 1\r\n", got)
	assert.NotContains(t, strings.ReplaceAll(got, "\r\n", ""), "\n")
}

func TestRewriteYears(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		start, end int
		want       string
		wantText   string
	}{
		{"single to range", "# Copyright 1002 James T. Kirk\n", 1002, 2025,
			"# Copyright 1002 - 2025 James T. Kirk\n", "# Copyright 1002 - 2025 James T. Kirk"},
		{"single to single", "x = 1\n# Copyright 2020 Alice\n", 2021, 2021,
			"x = 1\n# Copyright 2021 Alice\n", "# Copyright 2021 Alice"},
		{"range to range keeps spacing", "# Copyright 2020-2022 Alice\n", 2019, 2025,
			"# Copyright 2019-2025 Alice\n", "# Copyright 2019-2025 Alice"},
		{"range to single", "# Copyright 2020 - 2022 Alice\n", 2024, 2024,
			"# Copyright 2024 Alice\n", "# Copyright 2024 Alice"},
		{"name first", "// (c) Studio 2000 2021\n", 2019, 2025,
			"// (c) Studio 2000 2019 - 2025\n", "// (c) Studio 2000 2019 - 2025"},
		{"digits in name untouched", "# Copyright 2020 Team 2020\n", 2020, 2025,
			"# Copyright 2020 - 2025 Team 2020\n", "# Copyright 2020 - 2025 Team 2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers := comment_markers.Hash
			if tt.content[0] == '/' {
				markers = comment_markers.Slash
			}
			annotation, err := ParseComment(tt.content, markers)
			require.NoError(t, err)
			require.NotNil(t, annotation)

			assert.Equal(t, tt.want, RewriteYears(tt.content, annotation, tt.start, tt.end))
			assert.Equal(t, tt.wantText, rewriteText(annotation, tt.start, tt.end))
		})
	}
}
