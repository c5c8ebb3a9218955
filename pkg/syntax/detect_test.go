package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		want   syntax.Syntax
		wantOK bool
	}{
		{path: "a.css", want: syntax.CSS, wantOK: true},
		{path: "dir/B.CSS", want: syntax.CSS, wantOK: true},
		{path: "a.pcss", want: syntax.CSS, wantOK: true},
		{path: "a.scss", want: syntax.SCSS, wantOK: true},
		{path: "_partial.sass", want: syntax.Sass, wantOK: true},
		{path: "theme.less", want: syntax.Less, wantOK: true},
		{path: "README.md", want: syntax.CSS, wantOK: false},
		{path: "noext", want: syntax.CSS, wantOK: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			t.Parallel()

			got, ok := syntax.Detect(testCase.path, nil)
			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestIsStylesheetPath(t *testing.T) {
	t.Parallel()

	assert.True(t, syntax.IsStylesheetPath("x/y.scss"))
	assert.True(t, syntax.IsStylesheetPath("y.LESS"))
	assert.False(t, syntax.IsStylesheetPath("y.js"))
	assert.False(t, syntax.IsStylesheetPath("css"))
}

func TestDetectModeline(t *testing.T) {
	t.Parallel()

	got, ok := syntax.Detect("<stdin>", []byte("/* vim: set ft=scss: */\n$a: 1;\n"))
	assert.True(t, ok)
	assert.Equal(t, syntax.SCSS, got)

	_, ok = syntax.Detect("<stdin>", []byte("a { color: red; }\n"))
	assert.False(t, ok)
}
