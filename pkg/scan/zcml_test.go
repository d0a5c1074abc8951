package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/depchecker/pkg/errors"
)

const zcmlTemplate = `
<configure
  xmlns="http://namespaces.zope.org/zope"
  xmlns:browser="http://namespaces.zope.org/browser"
  xmlns:genericsetup="http://namespaces.zope.org/genericsetup">

%s

</configure>
`

const (
	relativeImport  = ".IRuleAssignable"
	absoluteImport1 = "plone.interfaces.IContent"
	absoluteImport2 = "zope.interfaces.IFolder"
	asteriskImport  = "*"
)

// zcmlImports lists attribute values and how many names they contribute.
var zcmlImports = []struct {
	found int
	value string
}{
	{0, relativeImport},
	{0, asteriskImport},
	{0, asteriskImport + " " + relativeImport},
	{1, absoluteImport1},
	{1, absoluteImport2 + " " + relativeImport},
	{1, asteriskImport + " " + absoluteImport1},
	{2, absoluteImport1 + " " + absoluteImport2},
	{2, absoluteImport1 + " " + absoluteImport2 + " " + asteriskImport},
}

func TestZCMLDiscover(t *testing.T) {
	z := NewZCML(nil)

	root := minimalStructure(t)
	if n := discoverCount(t, z, root); n != 0 {
		t.Errorf("Discover() found %d files, want 0", n)
	}

	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "a", "b"), "configure.zcml", "<configure/>")
	if n := discoverCount(t, z, src); n != 1 {
		t.Errorf("Discover() found %d files, want 1", n)
	}

	module := writeFile(t, t.TempDir(), "module.py", "")
	if n := discoverCount(t, z, module); n != 0 {
		t.Errorf("Discover(single module) found %d files, want 0", n)
	}
}

func TestZCMLDirectives(t *testing.T) {
	directives := []struct {
		element string
		attrs   []string
	}{
		{"include", []string{"package"}},
		{"adapter", []string{"for", "factory", "provides"}},
		{"utility", []string{"provides", "component"}},
		{"browser:page", []string{"class", "for", "layer"}},
		{"subscriber", []string{"handler", "for"}},
		{"securityPolicy", []string{"component"}},
		{"genericsetup:registerProfile", []string{"provides"}},
		{"implements", []string{"interface"}},
	}

	z := NewZCML(nil)
	for _, d := range directives {
		for _, attr := range d.attrs {
			for _, imp := range zcmlImports {
				name := fmt.Sprintf("%s@%s/%s", d.element, attr, imp.value)
				t.Run(name, func(t *testing.T) {
					stanza := fmt.Sprintf(`<%s %s="%s" />`, d.element, attr, imp.value)
					got := scanSource(t, z, "configure.zcml", fmt.Sprintf(zcmlTemplate, stanza))

					if len(got) != imp.found {
						t.Fatalf("Scan() = %v, want %d names", got, imp.found)
					}
					for _, v := range strings.Fields(imp.value) {
						if v == relativeImport || v == asteriskImport {
							continue
						}
						if !slices.Contains(got, v) {
							t.Errorf("Scan() = %v, want it to contain %s", got, v)
						}
					}
				})
			}
		}
	}
}

func TestZCMLIgnoresOtherNamespaces(t *testing.T) {
	source := `<configure xmlns="http://example.com/other"><include package="foo.bar" /></configure>`
	if got := scanSource(t, NewZCML(nil), "configure.zcml", source); len(got) != 0 {
		t.Errorf("Scan() = %v, want nothing", got)
	}
}

func TestZCMLMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "configure.zcml", "<configure><include package='a'></configure>")

	_, err := NewZCML(nil).Scan(context.Background(), NewUnit(dir, path))
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("Scan() error = %v, want PARSE_ERROR", err)
	}
}
