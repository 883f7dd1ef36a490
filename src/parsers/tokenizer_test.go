package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted field with comma",
			line: `a,"b,c",d`,
			want: []string{"a", "b,c", "d"},
		},
		{
			name: "escaped quote inside quoted field",
			line: `a,"say ""hi""",c`,
			want: []string{"a", `say "hi"`, "c"},
		},
		{
			name: "trailing comma yields empty trailing field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "whole row erroneously double-quoted",
			line: `"""381,BUY,0.01794592"""`,
			want: []string{"381", "BUY", "0.01794592"},
		},
		{
			name: "legitimately quoted single field stays one field",
			line: `"hello world"`,
			want: []string{"hello world"},
		},
		{
			name: "empty line",
			line: "",
			want: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenizeLine(tt.line))
		})
	}
}

func TestTokenizeLineNeverFails(t *testing.T) {
	// Unbalanced quotes still produce at least one field.
	got := TokenizeLine(`"unterminated,field`)
	assert.NotEmpty(t, got)
}

func TestSplitRows(t *testing.T) {
	rows := SplitRows("a,b\r\nc,d\n\n e,f \r\n")
	assert.Equal(t, []string{"a,b", "c,d", " e,f "}, rows)

	assert.Nil(t, SplitRows(""))
	assert.Nil(t, SplitRows("\n\r\n"))
}
