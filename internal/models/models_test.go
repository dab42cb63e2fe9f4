package models

import "testing"

func TestExportURL(t *testing.T) {
	cases := []struct {
		name string
		p    ProjectConfig
		want string
	}{
		{
			name: "full url",
			p:    ProjectConfig{URL: "https://docs.google.com/spreadsheets/d/abc123", GID: "0"},
			want: "https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=0",
		},
		{
			name: "bare spreadsheet id",
			p:    ProjectConfig{URL: "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", GID: "7"},
			want: "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/export?format=csv&gid=7",
		},
		{
			name: "short value left alone",
			p:    ProjectConfig{URL: "abc", GID: "0"},
			want: "abc/export?format=csv&gid=0",
		},
	}
	for _, c := range cases {
		if got := c.p.ExportURL(); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}
