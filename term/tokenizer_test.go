package term

import (
	"reflect"
	"testing"
)

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		caseSensitive bool
		want          []string
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name:          "plain words lowercased",
			text:          "Mobile Phone",
			caseSensitive: false,
			want:          []string{"mobile", "phone"},
		},
		{
			name:          "case sensitive keeps original",
			text:          "Mobile Phone",
			caseSensitive: true,
			want:          []string{"Mobile", "Phone"},
		},
		{
			name:          "single token",
			text:          "hippo",
			caseSensitive: false,
			want:          []string{"hippo"},
		},
		{
			name:          "repeated tokens kept",
			text:          "spam spam spam",
			caseSensitive: false,
			want:          []string{"spam", "spam", "spam"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTerms(tt.text, tt.caseSensitive)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTerms(%q, %v) = %v, want %v", tt.text, tt.caseSensitive, got, tt.want)
			}
		})
	}
}

func TestParseTermsDeterministic(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog"
	first := ParseTerms(text, false)
	for i := 0; i < 10; i++ {
		if got := ParseTerms(text, false); !reflect.DeepEqual(got, first) {
			t.Fatalf("ParseTerms is not deterministic: %v vs %v", got, first)
		}
	}
}

func TestSplitItems(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		separator string
		want      []string
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "default separator is single space",
			text: "milk bread eggs",
			want: []string{"milk", "bread", "eggs"},
		},
		{
			name:      "comma separator",
			text:      "milk, bread, eggs",
			separator: ",",
			want:      []string{"milk", "bread", "eggs"},
		},
		{
			name:      "semicolon separator with empty entries dropped",
			text:      "milk;;bread; ",
			separator: ";",
			want:      []string{"milk", "bread"},
		},
		{
			name:      "regexp separator",
			text:      "milk  bread\teggs",
			separator: `\s+`,
			want:      []string{"milk", "bread", "eggs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitItems(tt.text, tt.separator)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitItems(%q, %q) = %v, want %v", tt.text, tt.separator, got, tt.want)
			}
		})
	}
}
