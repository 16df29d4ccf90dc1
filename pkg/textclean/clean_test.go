package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "The factory released toxic smoke.", "The factory released toxic smoke."},
		{"strips urls", "read more at https://example.com/story?id=1 now", "read more at now"},
		{"strips www urls", "see www.example.com for details", "see for details"},
		{"strips html tags", "<p>hello <b>world</b></p>", "hello world"},
		{"collapses whitespace", "too\t\tmany   spaces\n\nhere", "too many spaces here"},
		{"drops control chars", "odd\x00bytes\x1fhere", "odd bytes here"},
		{"whitespace only becomes empty", "   \n\t  ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.in))
		})
	}
}
