package scan

import (
	"fmt"
	"path/filepath"
	"slices"
	"testing"
)

const gsTemplate = `<metadata>
<dependencies>
%s
</dependencies>
</metadata>
`

func sprintf(format string, args ...any) string { return fmt.Sprintf(format, args...) }

func TestGSMetadataDiscover(t *testing.T) {
	g := NewGSMetadata(nil)

	root := minimalStructure(t)
	if n := discoverCount(t, g, root); n != 0 {
		t.Errorf("Discover() found %d files, want 0", n)
	}

	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "a", "b", "c"), "metadata.xml", "<metadata/>")
	if n := discoverCount(t, g, src); n != 1 {
		t.Errorf("Discover() found %d files, want 1", n)
	}
}

func TestGSMetadataScan(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"other nodes", `<property class="something"></property>`, nil},
		{"empty dependency", `<dependency></dependency>`, nil},
		{"only spaces", `<dependency> </dependency>`, nil},
		{"missing prefix", `<dependency>plone.app.caching:default</dependency>`, nil},
		{"missing profile suffix", `<dependency>profile-plone.app.caching</dependency>`, nil},
		{"one dependency", `<dependency>profile-plone.app.caching:default</dependency>`, []string{"plone.app.caching"}},
		{
			"more dependencies",
			"<dependency>profile-plone.app.caching:default</dependency>\n<dependency>profile-plone.app.dexterity:default</dependency>",
			[]string{"plone.app.caching", "plone.app.dexterity"},
		},
	}

	g := NewGSMetadata(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanSource(t, g, "metadata.xml", sprintf(gsTemplate, tt.source))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGSMetadataIgnoresDependencyOutsideDependencies(t *testing.T) {
	source := `<metadata><dependency>profile-plone.app.caching:default</dependency></metadata>`
	if got := scanSource(t, NewGSMetadata(nil), "metadata.xml", source); len(got) != 0 {
		t.Errorf("Scan() = %v, want nothing", got)
	}
}
