package captions

import "testing"

func TestParseSRT(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "two blocks",
			doc:  "1\n00:00:01,000 --> 00:00:02,000\nHello world\n\n2\n00:00:02,000 --> 00:00:03,000\nSecond line\n\n",
			want: "Hello world Second line",
		},
		{
			name: "multi-line block joined with space",
			doc:  "1\n00:00:01,000 --> 00:00:02,000\nfirst\n  second  \n\n",
			want: "first second",
		},
		{
			name: "crlf line endings",
			doc:  "1\r\n00:00:01,000 --> 00:00:02,000\r\nHello\r\n\r\n2\r\n00:00:02,000 --> 00:00:03,000\r\nthere\r\n",
			want: "Hello there",
		},
		{
			name: "no trailing blank line",
			doc:  "1\n00:00:01,000 --> 00:00:02,000\nonly block",
			want: "only block",
		},
		{
			name: "indented index line",
			doc:  "  7  \n00:00:01,000 --> 00:00:02,000\ntext\n",
			want: "text",
		},
		{
			name: "block without text is dropped",
			doc:  "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:02,000 --> 00:00:03,000\nkept\n",
			want: "kept",
		},
		{
			name: "timing line is skipped without validation",
			doc:  "1\nnot a timestamp\nreal text\n",
			want: "real text",
		},
		{
			name: "digit-only line missing timing eats next line",
			doc:  "1\n2021\nwords here\n",
			want: "words here",
		},
		{
			name: "empty document",
			doc:  "",
			want: "",
		},
		{
			name: "text outside blocks ignored",
			doc:  "WEBVTT\n\nstray text\n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSRT(tt.doc); got != tt.want {
				t.Errorf("ParseSRT() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSRTIdempotentOnFlattenedText(t *testing.T) {
	doc := "1\n00:00:01,000 --> 00:00:02,000\nHello world\n\n2\n00:00:02,000 --> 00:00:03,000\nSecond line\n\n"
	flat := ParseSRT(doc)
	rewrapped := "1\n00:00:00,000 --> 00:00:01,000\n" + flat + "\n"
	if got := ParseSRT(rewrapped); got != flat {
		t.Errorf("re-parse = %q, want %q", got, flat)
	}
}
