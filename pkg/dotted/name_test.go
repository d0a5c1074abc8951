package dotted

import (
	"slices"
	"testing"

	"github.com/matzehuels/depchecker/pkg/errors"
)

func TestNew(t *testing.T) {
	n := New("Zope-Interface.verify")

	if n.String() != "Zope-Interface.verify" {
		t.Errorf("String() = %q, want %q", n.String(), "Zope-Interface.verify")
	}
	if n.Key() != "zope_interface.verify" {
		t.Errorf("Key() = %q, want %q", n.Key(), "zope_interface.verify")
	}
	if got := n.Namespaces(); !slices.Equal(got, []string{"zope_interface", "verify"}) {
		t.Errorf("Namespaces() = %v", got)
	}
	if !n.IsNamespaced() {
		t.Error("IsNamespaced() = false, want true")
	}
	if n.Path() != "" {
		t.Errorf("Path() = %q, want empty", n.Path())
	}
	if n.IsTest() {
		t.Error("IsTest() = true, want false")
	}
}

func TestNotNamespaced(t *testing.T) {
	if New("Plone").IsNamespaced() {
		t.Error("IsNamespaced() = true for single segment")
	}
}

func TestFromFile(t *testing.T) {
	n := FromFile("plone.app.dexterity", "/one/two", true)
	if n.Path() != "/one/two" {
		t.Errorf("Path() = %q, want %q", n.Path(), "/one/two")
	}
	if !n.IsTest() {
		t.Error("IsTest() = false, want true")
	}
}

func TestNamespacesIsCopy(t *testing.T) {
	n := New("a.b")
	ns := n.Namespaces()
	ns[0] = "x"
	if n.Namespaces()[0] != "a" {
		t.Error("Namespaces() exposed internal state")
	}
}

func TestFromRequirement(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"foo", "foo"},
		{"foo[extra]>=1.0", "foo"},
		{"my.dotted.name", "my.dotted.name"},
		{"zope.interface >= 4.0, < 6", "zope.interface"},
		{"requests[security,socks]==2.31", "requests"},
		{"six; python_version < '3'", "six"},
		{"  Products.CMFCore  ", "Products.CMFCore"},
		{"pkg @ https://example.com/pkg.zip", "pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			n, err := FromRequirement(tt.spec, "/setup.py")
			if err != nil {
				t.Fatalf("FromRequirement(%q) error: %v", tt.spec, err)
			}
			if n.String() != tt.want {
				t.Errorf("FromRequirement(%q) = %q, want %q", tt.spec, n.String(), tt.want)
			}
			if n.Path() != "/setup.py" {
				t.Errorf("Path() = %q, want %q", n.Path(), "/setup.py")
			}
			if n.IsTest() {
				t.Error("requirements are never test names")
			}
		})
	}
}

func TestFromRequirementInvalid(t *testing.T) {
	for _, spec := range []string{"", "   ", ">=1.0", "[extra]"} {
		t.Run(spec, func(t *testing.T) {
			_, err := FromRequirement(spec, "")
			if !errors.Is(err, errors.ErrCodeInvalidRequirement) {
				t.Errorf("FromRequirement(%q) error = %v, want %s", spec, err, errors.ErrCodeInvalidRequirement)
			}
		})
	}
}

func TestEqualIgnoresCaseAndSeparator(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Zope2", "zope2", true},
		{"zope-interface", "zope_interface", true},
		{"Products.Five", "products.five", true},
		{"one", "two", false},
		{"zope.interface", "zope-interface", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			a, b := New(tt.a), New(tt.b)
			if got := a.Equal(b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
			if got := a.Key() == b.Key(); got != tt.want {
				t.Errorf("Key() equality = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLessUsesOriginalSpelling(t *testing.T) {
	upper, lower := New("Products.GenericSetup"), New("missing.req")
	if !upper.Less(lower) {
		t.Error("uppercase names sort first")
	}

	// Equal entities may still order differently.
	a, b := New("Zope2"), New("zope2")
	if !a.Equal(b) {
		t.Fatal("names should be equal")
	}
	if !a.Less(b) || b.Less(a) {
		t.Error("ordering should follow the original spelling")
	}
}

func TestIn(t *testing.T) {
	tests := []struct {
		name        string
		item, owner string
		want        bool
	}{
		{"same name", "Plone", "Plone", true},
		{"same name different case", "plone", "Plone", true},
		{"different name", "Plone", "Zope", false},
		{"no substring match at beginning", "plo", "plone.app.imaging", false},
		{"no substring match reversed", "reinout.happy", "re", false},
		{"no substring match in middle", "ima", "plone.app.imaging", false},
		{"no substring match at end", "imaging", "plone.app.imaging", false},
		{"subpackage", "plone.app.imaging.interfaces.IImage", "plone.app.imaging", true},
		{"same depth but different", "plone.app.dexterity", "plone.app.imaging", false},
		{"share only part of namespace", "plone.app.dexterity.interfaces", "plone.app.imaging", false},
		{"both sides are tested", "plone.app.dexterity", "plone.app.imaging.interfaces", false},
		{"shorter item is not in longer owner", "some.thing", "some.thing.else", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.item).In(New(tt.owner)); got != tt.want {
				t.Errorf("%q.In(%q) = %v, want %v", tt.item, tt.owner, got, tt.want)
			}
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	names := []string{
		"plone", "plone.app", "plone.app.imaging", "plone.app.imaging.interfaces.IImage",
		"plo", "re", "reinout.happy", "zope", "zope.interface", "Zope.Interface",
		"zope-interface", "some.thing", "some.thing.else",
	}

	for _, a := range names {
		for _, b := range names {
			na, nb := New(a), New(b)
			if na.Overlaps(nb) != nb.Overlaps(na) {
				t.Errorf("Overlaps(%q, %q) is not symmetric", a, b)
			}
			if na.In(nb) && !na.Overlaps(nb) {
				t.Errorf("%q.In(%q) but not Overlaps", a, b)
			}
		}
	}

	if !New("some.thing").Overlaps(New("some.thing.else")) {
		t.Error("prefix names should overlap")
	}
	if New("plo").Overlaps(New("plone")) {
		t.Error("partial segments should not overlap")
	}
}
