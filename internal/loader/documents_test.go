package loader

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLinks_PartialDocument(t *testing.T) {
	body := `<links>
  <link id="1"><url> https://a.example </url></link>
  <link id="2"><url></url></link>
  <link><url>https://orphan.example</url></link>
  <link id="3"><url>https://c.example</url></link>
  <link id="1"><url>https://dup.example</url></link>
</links>`

	set, err := ParseLinks("link.xml", []byte(body))
	if err != nil {
		t.Fatalf("ParseLinks returned error: %v", err)
	}

	want := []LinkRecord{
		{ID: "1", URL: "https://a.example"},
		{ID: "3", URL: "https://c.example"},
	}
	if diff := cmp.Diff(want, set.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	for _, id := range []string{"2", "4"} {
		_, err := set.URL(id)
		var missing *MissingElementError
		if !errors.As(err, &missing) {
			t.Fatalf("URL(%s) error = %v, want *MissingElementError", id, err)
		}
	}
}

func TestParseLinks_AnyRootAndNesting(t *testing.T) {
	body := `<site><social><link id="9"><url>https://x.example</url></link></social></site>`
	set, err := ParseLinks("link.xml", []byte(body))
	if err != nil {
		t.Fatalf("ParseLinks returned error: %v", err)
	}
	if u, err := set.URL("9"); err != nil || u != "https://x.example" {
		t.Fatalf("URL(9) = %q, %v", u, err)
	}
}

func TestParseDocuments_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"text only", "hello"},
		{"unclosed", "<links><link id=\"1\">"},
		{"mismatched", "<links></link>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var parseErr *ParseError
			if _, err := ParseLinks("link.xml", []byte(tt.body)); !errors.As(err, &parseErr) {
				t.Fatalf("ParseLinks error = %v, want *ParseError", err)
			}
			if _, err := ParseVersion("version.xml", []byte(tt.body)); !errors.As(err, &parseErr) {
				t.Fatalf("ParseVersion error = %v, want *ParseError", err)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"present", "<info><version> 3.1 </version></info>", "Version: 3.1"},
		{"first wins", "<info><version>1</version><version>2</version></info>", "Version: 1"},
		{"missing element", "<info><build>7</build></info>", "Version: N/A"},
		{"empty element", "<info><version/></info>", "Version: N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseVersion("version.xml", []byte(tt.body))
			if err != nil {
				t.Fatalf("ParseVersion returned error: %v", err)
			}
			if got := rec.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
